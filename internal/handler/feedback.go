package handler

import "net/http"

// DrainFeedback 는 쌓인 토스트, 모달과 이동 요청을 가져가고 비운다.
func (h *Handler) DrainFeedback(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "피드백을 조회했습니다.", h.recorder.Drain())
}

func (h *Handler) SetLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path" validate:"required,startswith=/"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.recorder.Navigate(req.Path)
	h.successResponse(w, r, "현재 위치를 기록했습니다.", nil)
}
