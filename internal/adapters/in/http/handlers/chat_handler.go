// internal/adapters/in/http/handlers/chat_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Alanove07/designbynexa/internal/domain/chatbot"
)

// ChatHandler はサイトのチャットウィジェット用の定型応答です。
type ChatHandler struct{}

func NewChatHandler() *ChatHandler { return &ChatHandler{} }

func (h *ChatHandler) Register(r chi.Router) {
	r.Get("/", h.greeting)
	r.Post("/", h.reply)
}

// GET /api/chat
func (h *ChatHandler) greeting(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, chatbot.Reply{
		Topic:        chatbot.TopicDefault,
		Text:         chatbot.Greeting,
		QuickReplies: chatbot.QuickReplies(),
	})
}

// POST /api/chat {"message": "..."}
func (h *ChatHandler) reply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rep, ok := chatbot.Respond(req.Message)
	if !ok {
		writeError(w, http.StatusBadRequest, "message is empty")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
