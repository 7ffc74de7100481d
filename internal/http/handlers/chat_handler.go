// Conversational consultant HTTP handler.
//
//   - POST /chat (one conversational turn with optional prior history)
//
// The handler normalizes the message text, bounds the forwarded history, and
// delegates to TextService.
package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FAde16-lang/BrandCraft/internal/services"
)

// maxChatHistoryTurns caps how many prior turns are forwarded upstream.
const maxChatHistoryTurns = 20

// ChatRequest is the JSON payload for a conversational turn.
type ChatRequest struct {
	// Message is the user's current message. Required.
	Message string `json:"message" binding:"required,min=1" example:"How do I position a premium coffee brand?"`
	// ConversationHistory holds prior turns, oldest first.
	ConversationHistory []ChatTurn `json:"conversation_history"`
	// BusinessContext optionally describes the caller's business.
	BusinessContext string `json:"business_context" example:"Small-batch roastery in Berlin"`
}

// ChatTurn is one prior message of the conversation.
type ChatTurn struct {
	Role    string `json:"role" example:"user"`
	Content string `json:"content" example:"What makes a brand feel premium?"`
}

// ChatResponse carries the assistant reply.
type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
}

// nlCollapseRE collapses runs of 3+ newlines to two, preserving paragraphs.
var nlCollapseRE = regexp.MustCompile(`\n{3,}`)

// sanitizeMessage normalizes user text for consistent downstream behavior:
// CRLF/CR to LF, runs of 3+ LFs collapsed to two, surrounding space trimmed.
func sanitizeMessage(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = nlCollapseRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Chat godoc
// @ID          chat
// @Summary     Converse with the branding consultant
// @Description Runs one conversational turn. Prior turns may be supplied in
// @Description conversation_history; only the most recent ones are forwarded.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ChatRequest  true  "Chat payload"
// @Success     200  {object}  handlers.ChatResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     502  {object}  handlers.ErrorResponse  "Generation failed"
// @Router      /chat [post]
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	message := sanitizeMessage(req.Message)
	if message == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	turns := req.ConversationHistory
	if len(turns) > maxChatHistoryTurns {
		turns = turns[len(turns)-maxChatHistoryTurns:]
	}
	history := make([]services.ChatTurn, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		history = append(history, services.ChatTurn{Role: t.Role, Content: t.Content})
	}

	out, err := h.textSvc.Chat(c.Request.Context(), userID(c), message, history, req.BusinessContext)
	if err != nil {
		h.failGeneration(c, err)
		return
	}
	ok(c, http.StatusOK, ChatResponse{Success: true, Response: out, ModelUsed: h.modelName})
}
