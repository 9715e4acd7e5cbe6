// Package recent 는 최근에 본 공고 목록을 저장한다. 최신 순으로 최대 6개다.
package recent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/storage"
)

const (
	StorageKey = "recentNotices"
	MaxItems   = 6
)

type Store struct {
	mu      sync.Mutex
	storage storage.Store
	now     func() time.Time
}

func NewStore(st storage.Store) *Store {
	return &Store{storage: st, now: time.Now}
}

// Add 는 공고를 맨 앞에 넣는다. 이미 있던 공고는 앞으로 옮기고, 넘치면 가장 오래된 것을 버린다.
func (s *Store) Add(ctx context.Context, shopID, noticeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	next := make([]domain.RecentNotice, 0, MaxItems)
	next = append(next, domain.RecentNotice{
		ID:        noticeID,
		ShopID:    shopID,
		Timestamp: s.now().UnixMilli(),
	})
	for _, it := range items {
		if len(next) == MaxItems {
			break
		}
		if it.ID == noticeID {
			continue
		}
		next = append(next, it)
	}

	if err := storage.SetJSON(ctx, s.storage, StorageKey, next); err != nil {
		return fmt.Errorf("recent: persist: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) []domain.RecentNotice {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// 저장된 값이 없거나 깨져 있으면 빈 목록으로 본다.
func (s *Store) load(ctx context.Context) []domain.RecentNotice {
	var items []domain.RecentNotice
	err := storage.GetJSON(ctx, s.storage, StorageKey, &items)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return []domain.RecentNotice{}
	case err != nil:
		slog.Error("최근 본 공고를 읽을 수 없습니다", "error", err)
		return []domain.RecentNotice{}
	}
	if items == nil {
		items = []domain.RecentNotice{}
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	return items
}
