package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSentimentPrompt(t *testing.T) {
	prompt := GetSentimentPrompt("ada")
	require.Contains(t, prompt, "<author>ada</author>")
	require.Contains(t, prompt, "sentimentScore")
	require.Contains(t, prompt, "ONLY a single JSON object")
}

func TestGetSentimentPrompt_NoUsername(t *testing.T) {
	prompt := GetSentimentPrompt("")
	require.NotContains(t, prompt, "<author>")
}

func TestGetWeeklySummaryPrompt(t *testing.T) {
	prompt := GetWeeklySummaryPrompt("ada")
	require.Contains(t, prompt, "<author>ada</author>")
	require.Contains(t, prompt, "seven days")
	require.False(t, strings.Contains(prompt, "JSON"), "summary output is plain text")
}
