package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_DiscardsSupersededResults(t *testing.T) {
	r := NewResource("test", emptySlice[string])
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan State[[]string])
	go func() {
		done <- r.Run(ctx, func(context.Context) ([]string, int, error) {
			close(started)
			<-release
			return []string{"old"}, 1, nil
		})
	}()
	<-started
	assert.True(t, r.State().IsLoading)

	fresh := r.Run(ctx, func(context.Context) ([]string, int, error) {
		return []string{"new"}, 2, nil
	})
	assert.Equal(t, []string{"new"}, fresh.Data)

	close(release)
	<-done
	s := r.State()
	assert.Equal(t, []string{"new"}, s.Data)
	assert.Equal(t, 2, s.Total)
	assert.False(t, s.IsLoading)
}

func TestResource_FailureClearsData(t *testing.T) {
	r := NewResource("test", emptySlice[string])
	ctx := context.Background()

	r.Run(ctx, func(context.Context) ([]string, int, error) { return []string{"a"}, 1, nil })
	s := r.Run(ctx, func(context.Context) ([]string, int, error) { return nil, 0, errors.New("boom") })

	require.NotNil(t, s.Error)
	assert.Equal(t, "boom", *s.Error)
	assert.NotNil(t, s.Data)
	assert.Empty(t, s.Data)
	assert.Zero(t, s.Total)

	s = r.Run(ctx, func(context.Context) ([]string, int, error) { return []string{"b"}, 1, nil })
	assert.Nil(t, s.Error)
}

func TestResource_DisabledAndClosed(t *testing.T) {
	r := NewResource("test", emptySlice[string])
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, int, error) {
		calls++
		return []string{"x"}, 1, nil
	}

	r.SetEnabled(false)
	r.Run(ctx, load)
	assert.Zero(t, calls)

	r.SetEnabled(true)
	r.Run(ctx, load)
	assert.Equal(t, 1, calls)

	r.Close()
	r.Run(ctx, load)
	assert.Equal(t, 1, calls)
}

func TestResource_LateResultAfterCloseIsIgnored(t *testing.T) {
	r := NewResource("test", emptySlice[string])
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(context.Background(), func(context.Context) ([]string, int, error) {
			<-release
			return []string{"late"}, 1, nil
		})
	}()

	assert.Eventually(t, func() bool { return r.State().IsLoading }, time.Second, 5*time.Millisecond)
	r.Close()
	close(release)
	<-done

	assert.Empty(t, r.State().Data)
}

func TestSortQuery(t *testing.T) {
	tests := []struct {
		in    string
		sort  string
		order string
	}{
		{"마감임박순", "time", "asc"},
		{"시급많은순", "pay", "desc"},
		{"시간적은순", "hour", "asc"},
		{"가나다순", "shop", "asc"},
	}
	for _, tt := range tests {
		sort, order, err := SortQuery(domain.SortType(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.sort, sort, tt.in)
		assert.Equal(t, tt.order, order, tt.in)
	}

	_, _, err := SortQuery("최신순")
	assert.ErrorIs(t, err, ErrUnknownSort)
}

func TestParseAmount(t *testing.T) {
	n, ok := parseAmount("15,000")
	assert.True(t, ok)
	assert.Equal(t, 15000, n)

	_, ok = parseAmount("")
	assert.False(t, ok)
	_, ok = parseAmount("많이")
	assert.False(t, ok)
}
