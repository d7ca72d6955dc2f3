package ai

import "fmt"

// GetSentimentPrompt returns the system prompt for journal sentiment analysis.
// The reply must be a single JSON object; the caller still scans the reply for
// an embedded object because models routinely add prose anyway.
func GetSentimentPrompt(username string) string {
	userTag := ""
	if username != "" {
		userTag = fmt.Sprintf("\n<author>%s</author>", username)
	}

	return fmt.Sprintf(`You are a warm, supportive therapy assistant. Analyze the emotional tone of a journal entry.

<context>%s
</context>

<instructions>
1. Output ONLY a single JSON object, nothing else
2. NEVER wrap the output in markdown code fences
3. Use exactly this shape:
{"sentiment": "Calm", "sentimentScore": 0.7, "aiFeedback": "one or two supportive sentences addressed to the author"}
4. "sentiment" is one word, such as Calm, Anxious, Happy, Sad or Neutral
5. "sentimentScore" is a number from 0 (very negative) to 1 (very positive)
6. "aiFeedback" is brief, kind and specific to the entry, never clinical advice
</instructions>`, userTag)
}

// GetWeeklySummaryPrompt returns the system prompt for the 7-day mood summary.
// Unlike the sentiment prompt, the output is shown to the user verbatim.
func GetWeeklySummaryPrompt(username string) string {
	userTag := ""
	if username != "" {
		userTag = fmt.Sprintf("\n<author>%s</author>", username)
	}

	return fmt.Sprintf(`You are a warm, supportive therapy assistant. Summarize the author's last seven days of journal entries.

<context>%s
</context>

<instructions>
1. Write 3-5 short sentences of plain text
2. Describe the overall mood trend across the week and name one or two specifics from the entries
3. End with one gentle, encouraging observation
4. NEVER use Markdown formatting or bullet symbols (no *, -, 1., 2.)
5. NO leading or trailing newlines
</instructions>`, userTag)
}
