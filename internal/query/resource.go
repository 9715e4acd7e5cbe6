// Package query 는 화면 단위의 조회 상태(공고 목록, 공고 상세, 지원 내역, 프로필 등)를 관리한다.
// 조회 실패는 상태의 Error 로만 드러나고 호출한 쪽으로 오류를 던지지 않는다.
package query

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type State[T any] struct {
	Data      T       `json:"data"`
	Total     int     `json:"total"`
	IsLoading bool    `json:"isLoading"`
	Error     *string `json:"error"`
}

// Loader 는 한 번의 조회를 수행하고 데이터와 전체 개수를 돌려준다.
type Loader[T any] func(ctx context.Context) (T, int, error)

// Resource 는 조회 하나의 상태를 들고 있다. 조회마다 세대 번호를 붙여
// 나중에 시작한 조회보다 늦게 끝난 결과는 버린다.
type Resource[T any] struct {
	name  string
	empty func() T

	mu      sync.Mutex
	state   State[T]
	gen     uint64
	enabled bool
	closed  bool
}

func NewResource[T any](name string, empty func() T) *Resource[T] {
	r := &Resource[T]{
		name:    name,
		empty:   empty,
		enabled: true,
	}
	r.state.Data = empty()
	return r
}

func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Resource[T]) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enabled = enabled
}

func (r *Resource[T]) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.enabled
}

// Run 은 load 를 한 번 실행하고 결과를 반영한 상태를 돌려준다.
// 꺼져 있거나 닫힌 Resource 는 요청을 보내지 않는다.
func (r *Resource[T]) Run(ctx context.Context, load Loader[T]) State[T] {
	r.mu.Lock()
	if !r.enabled || r.closed {
		s := r.state
		r.mu.Unlock()
		return s
	}
	r.gen++
	gen := r.gen
	r.state.IsLoading = true
	r.mu.Unlock()

	data, total, err := load(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || gen != r.gen {
		return r.state
	}

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			slog.Error("조회에 실패했습니다", "resource", r.name, "error", err)
		}
		msg := errorText(err)
		r.state = State[T]{Data: r.empty(), Error: &msg}
		return r.state
	}

	r.state = State[T]{Data: data, Total: total}
	return r.state
}

// Update 는 서버 응답을 기다리지 않고 데이터를 바꾼다. 진행 중인 조회 결과는 버린다.
func (r *Resource[T]) Update(fn func(T) T) State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return r.state
	}
	r.gen++
	r.state.Data = fn(r.state.Data)
	r.state.IsLoading = false
	return r.state
}

// Close 이후에 도착한 결과는 반영하지 않는다.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}

func errorText(err error) string {
	if msg := gateway.MessageOf(err); msg != "" {
		return msg
	}
	return err.Error()
}

func emptySlice[T any]() []T {
	return []T{}
}

func nilPtr[T any]() *T {
	return nil
}
