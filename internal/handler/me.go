package handler

import (
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	s := h.profile.Load(r.Context())
	h.successResponse(w, r, stateMessage(s.Error), s)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required,max=20"`
		Phone   string `json:"phone" validate:"required,max=20"`
		Address string `json:"address" validate:"required,district"`
		Bio     string `json:"bio" validate:"max=200"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.profile.Update(r.Context(), repository.ProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Bio:     req.Bio,
	})
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgProfileSaved, user)
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	s := h.applications.SetPage(r.Context(), pageParam(r))
	h.successResponse(w, r, stateMessage(s.Error), s)
}
