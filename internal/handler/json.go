package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/alert"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	msgInternal = "서버 내부 오류가 발생했습니다."
	msgFailed   = "요청을 처리하지 못했습니다."
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("서버 내부 오류", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, "요청 형식이 올바르지 않습니다.")
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: msgInternal,
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// 사용자에게 그대로 보여 줄 수 있는 오류들
var userFacing = []error{
	repository.ErrPasswordMismatch,
	repository.ErrLoginInvalid,
	repository.ErrEmailTaken,
	repository.ErrNoticeNotFound,
	repository.ErrShopExists,
	repository.ErrNoUser,
	repository.ErrNoShop,
	repository.ErrInvalidDecision,
	query.ErrLoginRequired,
	query.ErrProfileRequired,
	query.ErrEmployerApply,
	query.ErrEmployerOnly,
	query.ErrNoticeClosed,
	query.ErrNotCancelable,
	query.ErrNotLoaded,
	query.ErrUnknownSort,
	query.ErrUnknownDistrict,
	alert.ErrNoRecipient,
}

// requestFailed 는 하위 계층의 오류를 응답으로 바꾼다. 분류할 수 없는 오류만 500 으로 본다.
func (h *Handler) requestFailed(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range userFacing {
		if errors.Is(err, target) {
			h.errorResponse(w, r, target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, gateway.ErrTimeout):
		h.errorResponse(w, r, gateway.MsgTimeout)
	case errors.Is(err, gateway.ErrNetwork):
		h.errorResponse(w, r, gateway.MsgNetwork)
	case errors.Is(err, gateway.ErrUnauthorized):
		h.errorResponse(w, r, gateway.MsgLoginRequired)
	case gateway.StatusOf(err) >= http.StatusInternalServerError:
		h.errorResponse(w, r, gateway.MsgServer)
	case gateway.StatusOf(err) != 0:
		msg := gateway.MessageOf(err)
		if msg == "" {
			msg = msgFailed
		}
		h.errorResponse(w, r, msg)
	default:
		h.internalServerError(w, r, err)
	}
}

// 조회 실패도 상태의 일부라 성공 응답에 담는다. 메시지만 오류 내용으로 바꾼다.
func stateMessage(errText *string) string {
	if errText != nil {
		return *errText
	}
	return "조회했습니다."
}
