// internal/adapters/in/http/handlers/email_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Alanove07/designbynexa/internal/adapters/out/mail"
)

// EmailHandler は管理画面からのメールテンプレートのプレビューと送信です。
//
//	GET  /emails                         テンプレート名の一覧
//	GET  /emails/{template}/preview      既定データで描画した HTML（?format=json で JSON）
//	POST /emails/{template}/preview      ボディの JSON データで描画
//	POST /emails/{template}              {"to": "...", "data": {...}} を送信
//	POST /emails/newsletter/bulk         {"recipients": [...], "data": {...}}
type EmailHandler struct {
	mailer *mail.Mailer
}

func NewEmailHandler(m *mail.Mailer) *EmailHandler {
	return &EmailHandler{mailer: m}
}

func (h *EmailHandler) Register(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/newsletter/bulk", h.bulkNewsletter)
	r.Get("/{template}/preview", h.preview)
	r.Post("/{template}/preview", h.preview)
	r.Post("/{template}", h.send)
}

func (h *EmailHandler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mail.TemplateNames())
}

func (h *EmailHandler) preview(w http.ResponseWriter, r *http.Request) {
	name := mail.TemplateName(chi.URLParam(r, "template"))

	var raw json.RawMessage
	if r.Method == http.MethodPost {
		if err := decodeJSON(w, r, &raw); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	out, err := h.mailer.Renderer().RenderJSON(name, raw)
	if err != nil {
		writeMailErr(w, err)
		return
	}
	if r.Method == http.MethodGet && r.URL.Query().Get("format") != "json" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out.HTML))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type sendEmailRequest struct {
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

func (h *EmailHandler) send(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.To) == "" {
		writeError(w, http.StatusBadRequest, "to is required")
		return
	}

	out, err := h.mailer.SendTemplate(r.Context(), mail.TemplateName(chi.URLParam(r, "template")), req.To, req.Data)
	if err != nil {
		writeMailErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sent":     true,
		"template": out.Template,
		"subject":  out.Subject,
	})
}

type bulkNewsletterRequest struct {
	Recipients []string            `json:"recipients"`
	Data       mail.NewsletterData `json:"data"`
}

func (h *EmailHandler) bulkNewsletter(w http.ResponseWriter, r *http.Request) {
	var req bulkNewsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Recipients) == 0 {
		writeError(w, http.StatusBadRequest, "recipients is required")
		return
	}
	res, err := h.mailer.SendBulkNewsletter(r.Context(), req.Recipients, req.Data)
	if err != nil {
		writeMailErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeMailErr(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, mail.ErrUnknownTemplate):
		code = http.StatusNotFound
	case errors.Is(err, mail.ErrEmptyTo), errors.Is(err, mail.ErrEmptyFrom):
		code = http.StatusBadRequest
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}
