package query

import (
	"context"
	"fmt"

	"github.com/eunji0124/The-Julge-sub000/internal/cache"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

// Profile 은 내 정보 화면이다. 캐시를 거쳐 읽고, 저장하면 캐시를 무효화한다.
type Profile struct {
	backend ProfileBackend
	session SessionWriter
	cache   *cache.Cache[domain.User]
	sink    feedback.Sink
	res     *Resource[*domain.User]
}

func NewProfile(backend ProfileBackend, session SessionWriter, c *cache.Cache[domain.User], sink feedback.Sink) *Profile {
	return &Profile{
		backend: backend,
		session: session,
		cache:   c,
		sink:    sink,
		res:     NewResource("profile", nilPtr[domain.User]),
	}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

func (p *Profile) State() State[*domain.User] {
	return p.res.State()
}

func (p *Profile) Load(ctx context.Context) State[*domain.User] {
	userID := p.session.Snapshot().UserID()

	return p.res.Run(ctx, func(ctx context.Context) (*domain.User, int, error) {
		if userID == "" {
			return nil, 0, repository.ErrNoUser
		}
		u, err := p.cache.Get(ctx, profileKey(userID), func(ctx context.Context) (domain.User, error) {
			return p.backend.GetUser(ctx, userID)
		})
		if err != nil {
			return nil, 0, err
		}
		return &u, 1, nil
	})
}

// Update 는 프로필을 저장하고 세션의 사용자 정보도 함께 바꾼다.
func (p *Profile) Update(ctx context.Context, in repository.ProfileInput) (domain.User, error) {
	userID := p.session.Snapshot().UserID()
	if userID == "" {
		return domain.User{}, repository.ErrNoUser
	}
	if !domain.IsDistrict(in.Address) {
		return domain.User{}, ErrUnknownDistrict
	}

	u, err := p.backend.UpdateUser(ctx, userID, in)
	if err != nil {
		clientErrorModal(p.sink, err)
		return domain.User{}, err
	}
	p.cache.Invalidate(profileKey(userID))

	if err := p.session.UpdateUser(ctx, u); err != nil {
		return u, fmt.Errorf("query: update session user: %w", err)
	}
	p.res.Update(func(*domain.User) *domain.User { return &u })
	p.sink.Modal(alertModal(MsgProfileSaved, "/me/profile"))
	return u, nil
}

func (p *Profile) Close() {
	p.res.Close()
}
