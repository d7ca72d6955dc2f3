package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"serein/internal/model"
	"serein/internal/service"
)

type JournalHandler struct {
	service service.JournalService
}

func NewJournalHandler(service service.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/journal/add", h.Add)
	g.GET("/journal/all", h.List)
	g.GET("/journal/summary", h.WeeklySummary)
	g.PUT("/journal/:id", h.Update)
	g.DELETE("/journal/:id", h.Delete)
}

type journalRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type journalResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentimentScore"`
	AIFeedback     string  `json:"aiFeedback"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type journalListResponse struct {
	Journals []journalResponse `json:"journals"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Add creates a journal entry with a sentiment judgment attached.
// @Summary Add journal entry
// @Description Create a journal entry; its content is analyzed for sentiment before it is stored
// @Tags journal
// @Accept json
// @Produce json
// @Param request body journalRequest true "Entry title and content"
// @Success 201 {object} journalResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /journal/add [post]
func (h *JournalHandler) Add(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	created, err := h.service.Add(c.Request().Context(), ident.UserID, ident.Username, req.Title, req.Content)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toJournalResponse(created))
}

// List returns the caller's journal entries, newest first.
// @Summary List journal entries
// @Description Get all journal entries of the authenticated user, newest first
// @Tags journal
// @Produce json
// @Success 200 {object} journalListResponse
// @Failure 401 {object} errorResponse
// @Router /journal/all [get]
func (h *JournalHandler) List(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	}

	journals, err := h.service.List(c.Request().Context(), ident.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}

	response := journalListResponse{Journals: make([]journalResponse, len(journals))}
	for i, j := range journals {
		response.Journals[i] = toJournalResponse(j)
	}

	return c.JSON(http.StatusOK, response)
}

// WeeklySummary returns an AI summary of the last 7 days of entries.
// @Summary Weekly summary
// @Description Summarize the caller's journal entries from the last 7 days
// @Tags journal
// @Produce json
// @Success 200 {object} summaryResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /journal/summary [get]
func (h *JournalHandler) WeeklySummary(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	}

	summary, err := h.service.WeeklySummary(c.Request().Context(), ident.UserID, ident.Username)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}

// Update edits a journal entry, re-analyzing it if the content changed.
// @Summary Update journal entry
// @Description Update title and/or content of an entry; changed content is re-analyzed
// @Tags journal
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body journalRequest true "New title and content"
// @Success 200 {object} journalResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /journal/{id} [put]
func (h *JournalHandler) Update(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	var req journalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	updated, err := h.service.Update(c.Request().Context(), ident.UserID, id, ident.Username, req.Title, req.Content)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toJournalResponse(updated))
}

// Delete removes a journal entry.
// @Summary Delete journal entry
// @Description Delete a journal entry owned by the authenticated user
// @Tags journal
// @Produce json
// @Param id path int true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /journal/{id} [delete]
func (h *JournalHandler) Delete(c echo.Context) error {
	ident, ok := currentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	}

	if err := h.service.Delete(c.Request().Context(), ident.UserID, id); err != nil {
		return writeServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func toJournalResponse(j model.Journal) journalResponse {
	return journalResponse{
		ID:             idToString(j.ID),
		Title:          j.Title,
		Content:        j.Content,
		Sentiment:      j.Sentiment,
		SentimentScore: j.SentimentScore,
		AIFeedback:     j.AIFeedback,
		CreatedAt:      j.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      j.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
