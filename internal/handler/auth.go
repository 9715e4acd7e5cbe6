package handler

import (
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "로그인했습니다.", user)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string          `json:"email" validate:"required,email"`
		Password        string          `json:"password" validate:"required,min=8"`
		PasswordConfirm string          `json:"passwordConfirm" validate:"required,eqfield=Password"`
		Type            domain.UserType `json:"type" validate:"required,oneof=employee employer"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), repository.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Type:     req.Type,
	})
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "가입이 완료되었습니다.", user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "로그아웃했습니다.", nil)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s := h.session.Snapshot()
	h.successResponse(w, r, "세션을 조회했습니다.", struct {
		IsAuthenticated bool         `json:"isAuthenticated"`
		User            *domain.User `json:"user"`
	}{
		IsAuthenticated: s.IsAuthenticated,
		User:            s.User,
	})
}
