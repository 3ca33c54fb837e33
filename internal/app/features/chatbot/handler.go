// internal/app/features/chatbot/handler.go
package chatbot

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/acadiahub/acadiahub/internal/app/system/httpjson"
	"github.com/acadiahub/acadiahub/internal/app/system/timeouts"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// maxPromptEvents caps how many events go into the system prompt to
// keep the request inside the model's token budget.
const maxPromptEvents = 20

// Handler relays chat messages to a hosted completion API, grounding
// the model with a summary of current events.
type Handler struct {
	Client *openai.Client // nil when no API key is configured
	Model  string
	Log    *zap.Logger
}

// NewHandler constructs a chatbot Handler. apiKey may be empty, in
// which case the endpoint degrades to a 503 fallback signal.
func NewHandler(apiKey, model string, logger *zap.Logger) *Handler {
	h := &Handler{Model: model, Log: logger}
	if apiKey != "" {
		h.Client = openai.NewClient(apiKey)
	}
	return h
}

type chatEvent struct {
	Title         string `json:"title"`
	StartTime     string `json:"startTime"`
	Location      string `json:"location"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Registrations []any  `json:"registrations"`
}

type chatRequest struct {
	Message string      `json:"message"`
	Events  []chatEvent `json:"events"`
}

// ServeChat handles POST /api/chatbot.
//
// Body: { "message": "...", "events": [...] }. Without a configured
// API key it returns 503 with { "fallback": true } so the client can
// switch to canned responses.
func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		httpjson.Error(w, http.StatusBadRequest, "Message is required")
		return
	}

	if h.Client == nil {
		httpjson.Write(w, http.StatusServiceUnavailable, map[string]any{
			"error":    "AI service not configured",
			"message":  "Chat assistance is unavailable right now",
			"fallback": true,
		})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "chat completion")
	defer cancel()

	resp, err := h.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(req.Events)},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		h.Log.Error("chatbot completion failed", zap.Error(err))
		httpjson.Write(w, http.StatusInternalServerError, map[string]any{
			"success":  false,
			"error":    "Failed to generate response",
			"fallback": true,
		})
		return
	}

	answer := "I apologize, but I could not generate a response. Please try again."
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		answer = resp.Choices[0].Message.Content
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": answer,
	})
}

// ServeTest handles GET /api/chatbot/test, reporting whether the
// completion client is wired up.
func (h *Handler) ServeTest(w http.ResponseWriter, r *http.Request) {
	message := "Chat assistant is not configured; set the API key to enable it"
	if h.Client != nil {
		message = "Chat assistant is configured and ready"
	}
	httpjson.Write(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"aiConfigured": h.Client != nil,
		"model":        h.Model,
		"message":      message,
	})
}

// buildSystemPrompt grounds the assistant with a numbered summary of
// current events, capped at maxPromptEvents.
func buildSystemPrompt(events []chatEvent) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for Acadia Hub, an event management platform for students.\n")
	b.WriteString("Your role is to help users find events, answer questions about events, suggest event ideas, and provide general assistance.\n\n")

	if len(events) == 0 {
		b.WriteString("There are currently no events in the system.\n")
	} else {
		if len(events) > maxPromptEvents {
			events = events[:maxPromptEvents]
		}
		b.WriteString("Current Events in the System:\n")
		for i, e := range events {
			desc := truncateRunes(e.Description, 100)
			fmt.Fprintf(&b, "%d. %s - %s at %s (%s, %d registrations)",
				i+1, e.Title, formatEventDate(e.StartTime), e.Location, e.Category, len(e.Registrations))
			if desc != "" {
				fmt.Fprintf(&b, " - %s", desc)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(`
Guidelines:
- Be friendly, helpful, and conversational
- When users ask about events, use the event data provided above
- If asked about specific event details, provide accurate information from the event list
- Suggest relevant events based on user interests
- Help users understand how to use Acadia Hub
- If you don't have information about something, say so honestly
- Keep responses concise but informative`)
	return b.String()
}

// truncateRunes caps s at n runes, cutting on a rune boundary so the
// prompt never carries a torn multi-byte character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// formatEventDate renders a stored wall-clock timestamp for the prompt,
// passing unparseable values through untouched.
func formatEventDate(raw string) string {
	for _, layout := range []string{"2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Monday, January 2, 2006 03:04 PM")
		}
	}
	return raw
}
