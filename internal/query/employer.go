package query

import (
	"context"
	"sync"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

const MsgDecided = "처리가 완료되었습니다."

// ShopNotices 는 사장님 가게에 등록된 공고 목록이다.
type ShopNotices struct {
	backend ShopNoticeLister
	session SessionReader
	limit   int
	res     *Resource[[]domain.NoticeView]

	mu   sync.Mutex
	page int
}

func NewShopNotices(backend ShopNoticeLister, session SessionReader, limit int) *ShopNotices {
	return &ShopNotices{
		backend: backend,
		session: session,
		limit:   limit,
		res:     NewResource("shop-notices", emptySlice[domain.NoticeView]),
		page:    1,
	}
}

func (s *ShopNotices) State() State[[]domain.NoticeView] {
	return s.res.State()
}

func (s *ShopNotices) SetPage(ctx context.Context, page int) State[[]domain.NoticeView] {
	s.mu.Lock()
	s.page = clampPage(page)
	s.mu.Unlock()

	return s.Load(ctx)
}

func (s *ShopNotices) Load(ctx context.Context) State[[]domain.NoticeView] {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()

	var shop domain.Shop
	if u := s.session.Snapshot().User; u != nil && u.Shop != nil {
		shop = u.Shop.Unwrap()
	}

	return s.res.Run(ctx, func(ctx context.Context) ([]domain.NoticeView, int, error) {
		if shop.ID == "" {
			return nil, 0, repository.ErrNoShop
		}
		list, err := s.backend.ListShopNotices(ctx, shop.ID, offsetOf(page, s.limit), s.limit)
		if err != nil {
			return nil, 0, err
		}
		return toNoticeViews(list.Unwrap(), shop, s.limit), list.Count, nil
	})
}

func (s *ShopNotices) Close() {
	s.res.Close()
}

// NoticeApplicants 는 사장님 공고 하나에 들어온 지원자 목록이다.
type NoticeApplicants struct {
	backend  ApplicantBackend
	session  SessionReader
	sink     feedback.Sink
	noticeID string
	limit    int
	res      *Resource[[]domain.ApplicationView]

	mu   sync.Mutex
	page int
}

func NewNoticeApplicants(backend ApplicantBackend, session SessionReader, sink feedback.Sink, noticeID string, limit int) *NoticeApplicants {
	return &NoticeApplicants{
		backend:  backend,
		session:  session,
		sink:     sink,
		noticeID: noticeID,
		limit:    limit,
		res:      NewResource("notice-applicants", emptySlice[domain.ApplicationView]),
		page:     1,
	}
}

func (n *NoticeApplicants) State() State[[]domain.ApplicationView] {
	return n.res.State()
}

func (n *NoticeApplicants) SetPage(ctx context.Context, page int) State[[]domain.ApplicationView] {
	n.mu.Lock()
	n.page = clampPage(page)
	n.mu.Unlock()

	return n.Load(ctx)
}

func (n *NoticeApplicants) Load(ctx context.Context) State[[]domain.ApplicationView] {
	n.mu.Lock()
	page := n.page
	n.mu.Unlock()
	shopID := n.shopID()

	return n.res.Run(ctx, func(ctx context.Context) ([]domain.ApplicationView, int, error) {
		list, err := n.backend.ListNoticeApplications(ctx, shopID, n.noticeID, offsetOf(page, n.limit), n.limit)
		if err != nil {
			return nil, 0, err
		}
		return toApplicationViews(list.Unwrap(), n.limit), list.Count, nil
	})
}

// Decide 는 지원을 승인하거나 거절하고, 목록의 해당 줄 상태를 바꾼다.
func (n *NoticeApplicants) Decide(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	if _, err := n.backend.DecideApplication(ctx, n.shopID(), n.noticeID, applicationID, status); err != nil {
		clientErrorModal(n.sink, err)
		return err
	}

	n.res.Update(func(rows []domain.ApplicationView) []domain.ApplicationView {
		next := make([]domain.ApplicationView, len(rows))
		copy(next, rows)
		for i := range next {
			if next[i].ID == applicationID {
				next[i].Status = domain.ToViewStatus(status)
			}
		}
		return next
	})
	n.sink.Toast(feedback.LevelSuccess, MsgDecided)
	return nil
}

func (n *NoticeApplicants) Close() {
	n.res.Close()
}

func (n *NoticeApplicants) shopID() string {
	if u := n.session.Snapshot().User; u != nil {
		return u.ShopID()
	}
	return ""
}
