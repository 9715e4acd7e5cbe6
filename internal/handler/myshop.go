package handler

import (
	"net/http"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

// 이미지 업로드는 5MB 까지 받는다
const maxImageSize = 5 << 20

type shopRequest struct {
	Name              string `json:"name" validate:"required,max=30"`
	Category          string `json:"category" validate:"required,oneof=한식 중식 일식 양식 분식 카페 편의점 기타"`
	Address1          string `json:"address1" validate:"required,district"`
	Address2          string `json:"address2" validate:"required,max=100"`
	Description       string `json:"description" validate:"max=500"`
	ImageURL          string `json:"imageUrl" validate:"required"`
	OriginalHourlyPay int    `json:"originalHourlyPay" validate:"required,min=1"`
}

func (s shopRequest) input() repository.ShopInput {
	return repository.ShopInput{
		Name:              s.Name,
		Category:          s.Category,
		Address1:          s.Address1,
		Address2:          s.Address2,
		Description:       s.Description,
		ImageURL:          s.ImageURL,
		OriginalHourlyPay: s.OriginalHourlyPay,
	}
}

type noticeRequest struct {
	HourlyPay   int       `json:"hourlyPay" validate:"required,min=1"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	WorkHour    int       `json:"workhour" validate:"required,min=1,max=24"`
	Description string    `json:"description" validate:"max=500"`
}

func (n noticeRequest) input() repository.NoticeInput {
	return repository.NoticeInput{
		HourlyPay:   n.HourlyPay,
		StartsAt:    n.StartsAt,
		WorkHour:    n.WorkHour,
		Description: n.Description,
	}
}

func (h *Handler) RegisterShop(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shop, err := h.myShop.Register(r.Context(), req.input())
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgShopSaved, shop)
}

func (h *Handler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shop, err := h.myShop.Update(r.Context(), req.input())
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgShopSaved, shop)
}

func (h *Handler) UploadShopImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		h.errorResponse(w, r, "이미지는 5MB 이하여야 합니다.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.errorResponse(w, r, "이미지 파일이 없습니다.")
		return
	}
	defer file.Close()

	url, err := h.myShop.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, "이미지를 올렸습니다.", struct {
		URL string `json:"url"`
	}{URL: url})
}

func (h *Handler) GetShopNotices(w http.ResponseWriter, r *http.Request) {
	s := h.shopNotices.SetPage(r.Context(), pageParam(r))
	h.successResponse(w, r, stateMessage(s.Error), s)
}

func (h *Handler) PostShopNotice(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	notice, err := h.myShop.PostNotice(r.Context(), req.input())
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgNoticeSaved, notice)
}

func (h *Handler) EditShopNotice(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	notice, err := h.myShop.EditNotice(r.Context(), chi.URLParam(r, "noticeID"), req.input())
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgNoticeSaved, notice)
}

func (h *Handler) noticeApplicants(r *http.Request) *query.NoticeApplicants {
	return query.NewNoticeApplicants(h.repository, h.session, h.recorder, chi.URLParam(r, "noticeID"), h.config.Pagination.ApplicantLimit)
}

func (h *Handler) GetNoticeApplicants(w http.ResponseWriter, r *http.Request) {
	a := h.noticeApplicants(r)
	defer a.Close()

	s := a.SetPage(r.Context(), pageParam(r))
	h.successResponse(w, r, stateMessage(s.Error), s)
}

func (h *Handler) DecideApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.ApplicationStatus `json:"status" validate:"required,oneof=accepted rejected"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	a := h.noticeApplicants(r)
	defer a.Close()

	if err := a.Decide(r.Context(), chi.URLParam(r, "applicationID"), req.Status); err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgDecided, nil)
}
