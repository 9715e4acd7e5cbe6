package query

import (
	"context"
	"log/slog"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"golang.org/x/sync/errgroup"
)

const recentFetchLimit = 3

type RecentLister interface {
	List(ctx context.Context) []domain.RecentNotice
}

type NoticeGetter interface {
	GetShopNotice(ctx context.Context, shopID, noticeID string) (domain.Notice, error)
}

// RecentNotices 는 최근 본 공고를 카드로 보여 준다. 더 이상 받아 올 수 없는 공고는 건너뛴다.
type RecentNotices struct {
	backend NoticeGetter
	recent  RecentLister
	res     *Resource[[]domain.NoticeView]
}

func NewRecentNotices(backend NoticeGetter, recent RecentLister) *RecentNotices {
	return &RecentNotices{
		backend: backend,
		recent:  recent,
		res:     NewResource("recent-notices", emptySlice[domain.NoticeView]),
	}
}

func (r *RecentNotices) State() State[[]domain.NoticeView] {
	return r.res.State()
}

func (r *RecentNotices) Load(ctx context.Context) State[[]domain.NoticeView] {
	return r.res.Run(ctx, func(ctx context.Context) ([]domain.NoticeView, int, error) {
		entries := r.recent.List(ctx)
		views := make([]*domain.NoticeView, len(entries))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(recentFetchLimit)
		for i, e := range entries {
			i, e := i, e
			g.Go(func() error {
				n, err := r.backend.GetShopNotice(gctx, e.ShopID, e.ID)
				if err != nil {
					slog.Warn("최근 본 공고를 불러오지 못했습니다", "noticeID", e.ID, "error", err)
					return nil
				}
				v := domain.NewNoticeView(n, domain.Shop{ID: e.ShopID})
				views[i] = &v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}

		out := make([]domain.NoticeView, 0, len(views))
		for _, v := range views {
			if v != nil {
				out = append(out, *v)
			}
		}
		return out, len(out), nil
	})
}

func (r *RecentNotices) Close() {
	r.res.Close()
}
