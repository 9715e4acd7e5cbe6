package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		if err := h.poller.Refresh(r.Context()); err != nil {
			h.requestFailed(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "알림을 조회했습니다.", h.poller.Snapshot())
}

func (h *Handler) MarkAlertRead(w http.ResponseWriter, r *http.Request) {
	if err := h.poller.MarkAsRead(r.Context(), chi.URLParam(r, "alertID")); err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "알림을 읽음으로 표시했습니다.", h.poller.Snapshot())
}

func (h *Handler) AlertModal(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "open":
		h.poller.OpenModal()
	case "close":
		h.poller.CloseModal()
	case "toggle":
		h.poller.ToggleModal()
	default:
		h.errorResponse(w, r, "알 수 없는 동작입니다.")
		return
	}

	h.successResponse(w, r, "알림 창 상태를 바꿨습니다.", h.poller.Snapshot())
}

// SetVisibility 는 화면이 보이는지 알려 준다. 숨겨지면 폴링을 멈춘다.
func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible *bool `json:"visible" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.poller.SetVisible(*req.Visible)
	h.successResponse(w, r, "화면 상태를 반영했습니다.", h.poller.Inputs())
}
