package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"serein/internal/logger"
	"serein/internal/model"
	"serein/internal/repository"
)

const tokenTTL = 7 * 24 * time.Hour

// Auth errors
var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// Identity is the authenticated owner injected into every journal request.
type Identity struct {
	UserID   int64
	Username string
}

// AuthResponse is returned after successful login/register.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"-"`
}

// AuthService provides registration, login and token validation.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResponse, error)
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	Me(ctx context.Context, userID int64) (model.User, error)
	// Authenticate validates a JWT and returns the identity it carries.
	Authenticate(token string) (Identity, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
}

// NewAuthService creates a new auth service. An empty secret gets a random
// one, which invalidates outstanding tokens on restart.
func NewAuthService(users repository.UserRepository, secret string) AuthService {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		key = []byte(hex.EncodeToString(buf))
		logger.Warn("jwt secret not configured, using an ephemeral one", "module", "service", "action", "init", "resource", "auth", "result", "ok")
	}
	return &authService{users: users, secret: key}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", "module", "service", "action", "create", "resource", "user", "result", "ok", "user_id", user.ID)
	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A valid token for a deleted user reads as unauthenticated.
			return model.User{}, ErrInvalidToken
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *authService) Authenticate(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	return Identity{UserID: userID, Username: username}, nil
}

func (s *authService) issueToken(user model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
