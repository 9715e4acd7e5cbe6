package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/go-chi/chi/v5"
)

type noticeListResponse struct {
	Params query.NoticeParams              `json:"params"`
	State  query.State[[]domain.NoticeView] `json:"state"`
}

func (h *Handler) noticeList(w http.ResponseWriter, r *http.Request, s query.State[[]domain.NoticeView]) {
	h.successResponse(w, r, stateMessage(s.Error), noticeListResponse{
		Params: h.notices.Params(),
		State:  s,
	})
}

func (h *Handler) GetNotices(w http.ResponseWriter, r *http.Request) {
	h.noticeList(w, r, h.notices.Load(r.Context()))
}

func (h *Handler) SetNoticeSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sort domain.SortType `json:"sort" validate:"required,oneof=마감임박순 시급많은순 시간적은순 가나다순"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	s, err := h.notices.SetSort(r.Context(), req.Sort)
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}
	h.noticeList(w, r, s)
}

func (h *Handler) SetNoticeFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locations []string   `json:"locations" validate:"max=25,dive,district"`
		StartDate *time.Time `json:"startDate"`
		Amount    string     `json:"amount" validate:"omitempty,numeric"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	filter := domain.FilterValues{StartDate: req.StartDate, Amount: req.Amount}
	for _, loc := range req.Locations {
		filter.Locations = append(filter.Locations, domain.District(loc))
	}

	s, err := h.notices.SetFilter(r.Context(), filter)
	if err != nil {
		h.requestFailed(w, r, err)
		return
	}
	h.noticeList(w, r, s)
}

func (h *Handler) SetNoticePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page int `json:"page" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.noticeList(w, r, h.notices.SetPage(r.Context(), req.Page))
}

func (h *Handler) SetNoticeKeyword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keyword string `json:"keyword" validate:"max=50"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.noticeList(w, r, h.notices.SetKeyword(r.Context(), req.Keyword))
}

func (h *Handler) GetRecommendedNotices(w http.ResponseWriter, r *http.Request) {
	s := h.recommended.Load(r.Context())
	h.successResponse(w, r, stateMessage(s.Error), s)
}

func (h *Handler) GetRecentNotices(w http.ResponseWriter, r *http.Request) {
	s := h.recentViews.Load(r.Context())
	h.successResponse(w, r, stateMessage(s.Error), s)
}

// noticeDetail 은 요청마다 새로 만든다. 공고 상세 상태는 화면 하나에만 속한다.
func (h *Handler) noticeDetail(r *http.Request) *query.NoticeDetail {
	return query.NewNoticeDetail(h.repository, h.session, h.recent, h.recorder, chi.URLParam(r, "shopID"), chi.URLParam(r, "noticeID"))
}

func (h *Handler) GetNoticeDetail(w http.ResponseWriter, r *http.Request) {
	d := h.noticeDetail(r)
	defer d.Close()

	s := d.Load(r.Context())
	h.successResponse(w, r, stateMessage(s.Error), s)
}

func (h *Handler) ApplyNotice(w http.ResponseWriter, r *http.Request) {
	d := h.noticeDetail(r)
	defer d.Close()

	if s := d.Reload(r.Context()); s.Error != nil {
		h.errorResponse(w, r, *s.Error)
		return
	}
	if err := d.Apply(r.Context()); err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgApplied, d.State())
}

func (h *Handler) CancelApplication(w http.ResponseWriter, r *http.Request) {
	d := h.noticeDetail(r)
	defer d.Close()

	if s := d.Reload(r.Context()); s.Error != nil {
		h.errorResponse(w, r, *s.Error)
		return
	}
	if err := d.Cancel(r.Context()); err != nil {
		h.requestFailed(w, r, err)
		return
	}

	h.successResponse(w, r, query.MsgCanceled, d.State())
}

// pageParam 은 ?page= 값을 읽는다. 없거나 잘못된 값이면 1 이다.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
