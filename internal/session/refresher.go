package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"golang.org/x/sync/singleflight"
)

type UserFetcher interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// Refresher 는 변경 요청이 성공한 뒤 사용자 정보를 다시 받아 세션을 갱신한다.
// 최소 간격 안의 요청은 버리고, 동시에 들어온 요청은 하나로 합친다.
type Refresher struct {
	store       *Store
	users       UserFetcher
	minInterval time.Duration
	timeout     time.Duration

	group sync.WaitGroup
	sf    singleflight.Group
	mu    sync.Mutex
	last  time.Time
	now   func() time.Time
}

func NewRefresher(store *Store, users UserFetcher, minInterval, timeout time.Duration) *Refresher {
	return &Refresher{
		store:       store,
		users:       users,
		minInterval: minInterval,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Trigger 는 path 에 대한 변경 요청이 성공했음을 알린다. 갱신은 백그라운드에서 한다.
func (r *Refresher) Trigger(path string) {
	current := r.store.Snapshot()
	if !current.IsAuthenticated {
		return
	}
	// 사용자 리소스 자체를 바꾼 요청은 호출한 쪽이 결과로 세션을 갱신한다
	if targetsUser(path, current.UserID()) {
		return
	}

	r.group.Add(1)
	go func() {
		defer r.group.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		_ = r.Refresh(ctx)
	}()
}

// Refresh 는 간격 제한을 지키며 동기적으로 갱신한다. 실패는 기록만 한다.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if !r.last.IsZero() && r.now().Sub(r.last) < r.minInterval {
		r.mu.Unlock()
		return nil
	}
	r.last = r.now()
	r.mu.Unlock()

	_, err, _ := r.sf.Do("refresh", func() (any, error) {
		current := r.store.Snapshot()
		if !current.IsAuthenticated {
			return nil, nil
		}

		user, err := r.users.GetUser(ctx, current.UserID())
		if err != nil {
			return nil, err
		}
		return nil, r.store.UpdateUser(ctx, user)
	})
	if err != nil {
		slog.Error("세션 갱신 실패", "error", err)
	}
	return err
}

// Wait 는 진행 중인 백그라운드 갱신이 끝날 때까지 기다린다.
func (r *Refresher) Wait() {
	r.group.Wait()
}

func targetsUser(path, userID string) bool {
	if userID == "" {
		return false
	}
	prefix := "/users/" + userID
	return path == prefix || strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+"?")
}
