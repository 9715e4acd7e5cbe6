// Package session 은 로그인 상태(토큰, 사용자)를 들고 있는 프로세스 단위 저장소다.
// 상태를 바꾸는 길은 SetAuth, ClearAuth, UpdateUser 뿐이다.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/storage"
	"github.com/golang-jwt/jwt/v5"
)

const StorageKey = "auth-storage"

var ErrNotAuthenticated = errors.New("session: not authenticated")

type Store struct {
	mu      sync.RWMutex
	state   domain.AuthSession
	storage storage.Store
	subs    map[int]func(domain.AuthSession)
	nextSub int
	now     func() time.Time
}

func NewStore(st storage.Store) *Store {
	return &Store{
		storage: st,
		subs:    make(map[int]func(domain.AuthSession)),
		now:     time.Now,
	}
}

// Restore 는 저장된 세션을 불러온다. 깨진 데이터나 만료된 토큰이면 세션을 비운다.
func (s *Store) Restore(ctx context.Context) error {
	var persisted domain.AuthSession
	err := storage.GetJSON(ctx, s.storage, StorageKey, &persisted)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		slog.Error("저장된 세션을 읽을 수 없습니다", "error", err)
		return s.ClearAuth(ctx)
	}

	restored := domain.NewAuthSession(persisted.Token, persisted.User)
	if restored.IsAuthenticated && tokenExpired(persisted.Token, s.now()) {
		slog.Info("만료된 토큰이라 세션을 비웁니다", "userID", restored.UserID())
		return s.ClearAuth(ctx)
	}

	s.set(restored)
	return nil
}

func (s *Store) Snapshot() domain.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Token 은 저장소에 남아 있는 토큰을 읽는다. 저장된 데이터가 깨져 있으면 오류를 돌려준다.
func (s *Store) Token(ctx context.Context) (string, error) {
	var persisted domain.AuthSession
	if err := storage.GetJSON(ctx, s.storage, StorageKey, &persisted); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return persisted.Token, nil
}

func (s *Store) SetAuth(ctx context.Context, token string, user domain.User) error {
	next := domain.NewAuthSession(token, &user)
	if err := storage.SetJSON(ctx, s.storage, StorageKey, next); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	s.set(next)
	return nil
}

// ClearAuth 는 저장소 오류가 나도 메모리의 세션은 반드시 비운다.
func (s *Store) ClearAuth(ctx context.Context) error {
	s.set(domain.AuthSession{})
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// UpdateUser 는 로그인 상태일 때만 사용자 스냅샷을 바꾼다.
func (s *Store) UpdateUser(ctx context.Context, user domain.User) error {
	current := s.Snapshot()
	if !current.IsAuthenticated {
		return ErrNotAuthenticated
	}
	if current.UserID() != user.ID {
		return fmt.Errorf("session: user changed from %s to %s", current.UserID(), user.ID)
	}
	return s.SetAuth(ctx, current.Token, user)
}

// Subscribe 는 세션이 바뀔 때마다 fn 을 부른다. 돌려받은 함수로 구독을 끊는다.
func (s *Store) Subscribe(fn func(domain.AuthSession)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) set(next domain.AuthSession) {
	s.mu.Lock()
	s.state = next
	subs := make([]func(domain.AuthSession), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// 토큰 서명은 백엔드가 검증한다. 여기서는 exp 만 본다.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
