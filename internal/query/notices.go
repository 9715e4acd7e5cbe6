package query

import (
	"context"
	"sync"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

type NoticeParams struct {
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
	Sort    domain.SortType     `json:"sort"`
	Filter  domain.FilterValues `json:"filter"`
	Keyword string              `json:"keyword"`
}

// NoticeList 는 전체 공고 목록이다. 정렬, 필터, 검색어를 바꾸면 1페이지부터 다시 받는다.
type NoticeList struct {
	backend NoticeLister
	res     *Resource[[]domain.NoticeView]

	mu     sync.Mutex
	params NoticeParams
}

func NewNoticeList(backend NoticeLister, limit int) *NoticeList {
	return &NoticeList{
		backend: backend,
		res:     NewResource("notices", emptySlice[domain.NoticeView]),
		params: NoticeParams{
			Page:  1,
			Limit: limit,
			Sort:  domain.SortDeadline,
		},
	}
}

func (l *NoticeList) Params() NoticeParams {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.params
}

func (l *NoticeList) State() State[[]domain.NoticeView] {
	return l.res.State()
}

// SetEnabled 는 검색 모드처럼 다른 목록이 대신 화면을 쓰는 동안 조회를 끈다.
func (l *NoticeList) SetEnabled(enabled bool) {
	l.res.SetEnabled(enabled)
}

func (l *NoticeList) Load(ctx context.Context) State[[]domain.NoticeView] {
	p := l.Params()
	return l.res.Run(ctx, func(ctx context.Context) ([]domain.NoticeView, int, error) {
		return fetchNotices(ctx, l.backend, p)
	})
}

func (l *NoticeList) SetSort(ctx context.Context, s domain.SortType) (State[[]domain.NoticeView], error) {
	if _, _, err := SortQuery(s); err != nil {
		return l.State(), err
	}
	l.update(func(p *NoticeParams) {
		p.Sort = s
		p.Page = 1
	})
	return l.Load(ctx), nil
}

func (l *NoticeList) SetFilter(ctx context.Context, f domain.FilterValues) (State[[]domain.NoticeView], error) {
	if err := validateFilter(f); err != nil {
		return l.State(), err
	}
	l.update(func(p *NoticeParams) {
		p.Filter = f
		p.Page = 1
	})
	return l.Load(ctx), nil
}

func (l *NoticeList) SetKeyword(ctx context.Context, keyword string) State[[]domain.NoticeView] {
	l.update(func(p *NoticeParams) {
		p.Keyword = keyword
		p.Page = 1
	})
	return l.Load(ctx)
}

func (l *NoticeList) SetPage(ctx context.Context, page int) State[[]domain.NoticeView] {
	l.update(func(p *NoticeParams) {
		p.Page = clampPage(page)
	})
	return l.Load(ctx)
}

func (l *NoticeList) Close() {
	l.res.Close()
}

func (l *NoticeList) update(fn func(p *NoticeParams)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(&l.params)
}

func fetchNotices(ctx context.Context, backend NoticeLister, p NoticeParams) ([]domain.NoticeView, int, error) {
	q := repository.NoticeQuery{
		Offset:  offsetOf(p.Page, p.Limit),
		Limit:   p.Limit,
		Keyword: p.Keyword,
	}
	if sort, order, err := SortQuery(p.Sort); err == nil {
		q.Sort, q.Order = sort, order
	}
	applyFilter(&q, p.Filter)

	list, err := backend.ListNotices(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return toNoticeViews(list.Unwrap(), domain.Shop{}, p.Limit), list.Count, nil
}

// toNoticeViews 는 limit 보다 많이 내려와도 limit 개까지만 쓴다.
func toNoticeViews(notices []domain.Notice, shop domain.Shop, limit int) []domain.NoticeView {
	if limit > 0 && len(notices) > limit {
		notices = notices[:limit]
	}
	views := make([]domain.NoticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, domain.NewNoticeView(n, shop))
	}
	return views
}

// Recommended 는 로그인한 사용자의 선호 지역 공고를 마감 임박 순으로 보여 준다.
// 선호 지역이 없으면 전체 공고에서 고른다.
type Recommended struct {
	backend NoticeLister
	session SessionReader
	limit   int
	res     *Resource[[]domain.NoticeView]
}

func NewRecommended(backend NoticeLister, session SessionReader, limit int) *Recommended {
	return &Recommended{
		backend: backend,
		session: session,
		limit:   limit,
		res:     NewResource("recommended", emptySlice[domain.NoticeView]),
	}
}

func (r *Recommended) State() State[[]domain.NoticeView] {
	return r.res.State()
}

func (r *Recommended) Load(ctx context.Context) State[[]domain.NoticeView] {
	p := NoticeParams{Page: 1, Limit: r.limit, Sort: domain.SortDeadline}
	if s := r.session.Snapshot(); s.IsAuthenticated && domain.IsDistrict(s.User.Address) {
		p.Filter.Locations = []domain.District{domain.District(s.User.Address)}
	}
	return r.res.Run(ctx, func(ctx context.Context) ([]domain.NoticeView, int, error) {
		return fetchNotices(ctx, r.backend, p)
	})
}

func (r *Recommended) Close() {
	r.res.Close()
}
