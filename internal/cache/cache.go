// Package cache 는 키 단위 stale-while-revalidate 캐시다.
// 같은 키로 동시에 들어온 조회는 하나의 요청으로 합친다.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

type Cache[T any] struct {
	staleTime time.Duration
	// 백그라운드 재검증에 쓰는 시간 제한
	revalidateTimeout time.Duration

	mu      sync.Mutex
	entries map[string]entry[T]
	// 무효화될 때마다 올라간다. 무효화 이전에 시작한 조회 결과는 저장하지 않는다.
	epochs map[string]uint64
	sf     singleflight.Group
	group  sync.WaitGroup
	now    func() time.Time
}

func New[T any](staleTime, revalidateTimeout time.Duration) *Cache[T] {
	return &Cache[T]{
		staleTime:         staleTime,
		revalidateTimeout: revalidateTimeout,
		entries:           make(map[string]entry[T]),
		epochs:            make(map[string]uint64),
		now:               time.Now,
	}
}

// Get 은 신선한 값이 있으면 바로, 오래된 값이 있으면 그 값을 돌려주고 뒤에서 다시 받아온다.
// 값이 없으면 fetch 결과를 기다린다.
func (c *Cache[T]) Get(ctx context.Context, key string, fetch FetchFunc[T]) (T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		if c.now().Sub(e.fetchedAt) >= c.staleTime {
			c.revalidate(key, fetch)
		}
		return e.value, nil
	}

	return c.load(ctx, key, fetch)
}

func (c *Cache[T]) load(ctx context.Context, key string, fetch FetchFunc[T]) (T, error) {
	c.mu.Lock()
	epoch := c.epochs[key]
	c.mu.Unlock()

	ch := c.sf.DoChan(key, func() (any, error) {
		// 같은 조회를 기다리는 다른 호출자가 있으니 첫 호출자의 취소를 따르지 않는다
		fetchCtx := context.WithoutCancel(ctx)
		if c.revalidateTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.revalidateTimeout)
			defer cancel()
		}

		v, err := fetch(fetchCtx)
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		if c.epochs[key] == epoch {
			c.entries[key] = entry[T]{value: v, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (c *Cache[T]) revalidate(key string, fetch FetchFunc[T]) {
	c.group.Add(1)
	go func() {
		defer c.group.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.revalidateTimeout)
		defer cancel()

		if _, err := c.load(ctx, key, fetch); err != nil {
			slog.Error("캐시를 다시 받아오지 못했습니다", "key", key, "error", err)
		}
	}()
}

// Set 은 방금 받은 값으로 캐시를 채운다.
func (c *Cache[T]) Set(key string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epochs[key]++
	c.entries[key] = entry[T]{value: v, fetchedAt: c.now()}
}

func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epochs[key]++
	delete(c.entries, key)
	c.sf.Forget(key)
}

// Wait 은 진행 중인 백그라운드 재검증이 끝날 때까지 기다린다.
func (c *Cache[T]) Wait() {
	c.group.Wait()
}
