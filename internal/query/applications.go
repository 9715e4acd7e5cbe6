package query

import (
	"context"
	"sync"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

// Applications 는 로그인한 알바님의 지원 내역이다.
type Applications struct {
	backend ApplicationLister
	session SessionReader
	limit   int
	res     *Resource[[]domain.ApplicationView]

	mu   sync.Mutex
	page int
}

func NewApplications(backend ApplicationLister, session SessionReader, limit int) *Applications {
	return &Applications{
		backend: backend,
		session: session,
		limit:   limit,
		res:     NewResource("applications", emptySlice[domain.ApplicationView]),
		page:    1,
	}
}

func (a *Applications) State() State[[]domain.ApplicationView] {
	return a.res.State()
}

func (a *Applications) Page() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.page
}

func (a *Applications) SetPage(ctx context.Context, page int) State[[]domain.ApplicationView] {
	a.mu.Lock()
	a.page = clampPage(page)
	a.mu.Unlock()

	return a.Load(ctx)
}

func (a *Applications) Load(ctx context.Context) State[[]domain.ApplicationView] {
	page := a.Page()
	userID := a.session.Snapshot().UserID()

	return a.res.Run(ctx, func(ctx context.Context) ([]domain.ApplicationView, int, error) {
		if userID == "" {
			return nil, 0, repository.ErrNoUser
		}
		list, err := a.backend.ListUserApplications(ctx, userID, offsetOf(page, a.limit), a.limit)
		if err != nil {
			return nil, 0, err
		}
		return toApplicationViews(list.Unwrap(), a.limit), list.Count, nil
	})
}

func (a *Applications) Close() {
	a.res.Close()
}

func toApplicationViews(apps []domain.Application, limit int) []domain.ApplicationView {
	if limit > 0 && len(apps) > limit {
		apps = apps[:limit]
	}
	views := make([]domain.ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, domain.NewApplicationView(app))
	}
	return views
}
