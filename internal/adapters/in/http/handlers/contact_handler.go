// internal/adapters/in/http/handlers/contact_handler.go
package handlers

import (
	"errors"
	"net/http"

	usecase "github.com/Alanove07/designbynexa/internal/application/usecase"
	contactdom "github.com/Alanove07/designbynexa/internal/domain/contact"
)

// ContactHandler は POST /api/contact です。
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.uc.Submit(r.Context(), contactdom.Message{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		writeContactErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func writeContactErr(w http.ResponseWriter, err error) {
	code := http.StatusBadGateway
	switch {
	case errors.Is(err, contactdom.ErrRequiredField),
		errors.Is(err, contactdom.ErrInvalidEmail),
		errors.Is(err, contactdom.ErrTooLong):
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}
