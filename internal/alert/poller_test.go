package alert

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	alerts  []domain.Alert
	listErr error
	block   chan struct{}
	delay   time.Duration
	lists   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
	marked  []string
}

func (f *fakeBackend) ListAlerts(ctx context.Context, userID string, offset, limit int) (domain.List[domain.Alert], error) {
	f.lists.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	// 취소와 상관없이 늦게 끝나는 백엔드
	time.Sleep(f.delay)

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return domain.List[domain.Alert]{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return domain.List[domain.Alert]{}, f.listErr
	}

	end := min(offset+limit, len(f.alerts))
	page := domain.List[domain.Alert]{Offset: offset, Limit: limit, Count: len(f.alerts), HasNext: end < len(f.alerts)}
	for _, a := range f.alerts[offset:end] {
		page.Items = append(page.Items, domain.Item[domain.Alert]{Item: a})
	}
	return page, nil
}

func (f *fakeBackend) MarkAlertRead(_ context.Context, _ string, alertID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, alertID)
	for i := range f.alerts {
		if f.alerts[i].ID == alertID {
			f.alerts[i].Read = true
		}
	}
	return nil
}

func testConfig(interval int) *config.Config {
	cfg := &config.Config{}
	cfg.Poller.Enabled = true
	cfg.Poller.VisibilityAware = true
	cfg.Poller.Interval = interval
	cfg.Poller.PageSize = 2
	return cfg
}

func employeeSession() domain.AuthSession {
	return domain.NewAuthSession("token", &domain.User{ID: "user-1", Email: "worker@example.com", Type: domain.UserTypeEmployee})
}

func sampleAlerts() []domain.Alert {
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	return []domain.Alert{
		{ID: "a1", CreatedAt: base, Result: domain.ApplicationAccepted, Read: true},
		{ID: "a2", CreatedAt: base.Add(time.Hour), Result: domain.ApplicationRejected, Read: true},
		{ID: "a3", CreatedAt: base.Add(2 * time.Hour), Result: domain.ApplicationPending, Read: false},
	}
}

func TestInputs_ShouldPoll(t *testing.T) {
	ok := Inputs{Authenticated: true, Role: domain.UserTypeEmployee, Visible: true, Enabled: true, VisibilityAware: true}
	assert.True(t, ok.ShouldPoll())

	tests := map[string]func(in *Inputs){
		"logged out": func(in *Inputs) { in.Authenticated = false },
		"employer":   func(in *Inputs) { in.Role = domain.UserTypeEmployer },
		"disabled":   func(in *Inputs) { in.Enabled = false },
		"hidden":     func(in *Inputs) { in.Visible = false },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := ok
			mutate(&in)
			assert.False(t, in.ShouldPoll())
		})
	}

	hidden := ok
	hidden.Visible = false
	hidden.VisibilityAware = false
	assert.True(t, hidden.ShouldPoll())
}

func TestPoller_FetchesImmediatelyAndFilters(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts()}
	p := New(testConfig(60000), backend)
	t.Cleanup(p.Stop)

	p.SetSession(employeeSession())

	require.Eventually(t, func() bool { return !p.Snapshot().UpdatedAt.IsZero() }, time.Second, 5*time.Millisecond)
	s := p.Snapshot()
	assert.True(t, s.Polling)
	require.Len(t, s.Notifications, 2)
	assert.Equal(t, "a2", s.Notifications[0].ID)
	assert.Equal(t, "a1", s.Notifications[1].ID)
	// 대기 중인 알림은 목록에 없지만 읽지 않은 표시는 켠다
	assert.True(t, s.HasUnread)
	// 페이지 크기 2 로 3건을 모두 받는다
	assert.EqualValues(t, 2, backend.lists.Load())
}

func TestPoller_NoOverlappingFetches(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts(), block: make(chan struct{})}
	p := New(testConfig(5), backend)

	p.SetSession(employeeSession())
	time.Sleep(60 * time.Millisecond)

	assert.EqualValues(t, 1, backend.lists.Load())
	close(backend.block)
	p.Stop()
	assert.EqualValues(t, 1, backend.maxSeen.Load())
}

func TestPoller_RearmedLoopFetchesWhileOldFetchIsRunning(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts(), delay: 50 * time.Millisecond}
	p := New(testConfig(60000), backend)
	t.Cleanup(p.Stop)

	p.SetSession(employeeSession())
	require.Eventually(t, func() bool { return backend.lists.Load() == 1 }, time.Second, time.Millisecond)

	// 첫 조회가 끝나기 전에 화면을 숨겼다가 다시 보인다
	p.SetVisible(false)
	p.SetVisible(true)

	require.Eventually(t, func() bool { return len(p.Snapshot().Notifications) == 2 }, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, backend.lists.Load(), int32(2))
	assert.True(t, p.Snapshot().Polling)
}

func TestPoller_VisibilityAndRoleGating(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts()}
	p := New(testConfig(60000), backend)
	t.Cleanup(p.Stop)

	p.SetVisible(false)
	p.SetSession(employeeSession())
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, backend.lists.Load())
	assert.False(t, p.Snapshot().Polling)

	p.SetVisible(true)
	require.Eventually(t, func() bool { return backend.lists.Load() > 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Snapshot().Polling)

	p.SetSession(domain.NewAuthSession("token", &domain.User{ID: "owner-1", Type: domain.UserTypeEmployer}))
	assert.False(t, p.Snapshot().Polling)
	assert.Empty(t, p.Snapshot().Notifications)

	p.SetSession(domain.AuthSession{})
	assert.False(t, p.Snapshot().Polling)
}

func TestPoller_HiddenPollingWhenNotVisibilityAware(t *testing.T) {
	backend := &fakeBackend{}
	cfg := testConfig(60000)
	cfg.Poller.VisibilityAware = false
	p := New(cfg, backend)
	t.Cleanup(p.Stop)

	p.SetVisible(false)
	p.SetSession(employeeSession())
	require.Eventually(t, func() bool { return backend.lists.Load() > 0 }, time.Second, 5*time.Millisecond)
}

func TestPoller_MarkAsReadRefetches(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts()[:2]}
	backend.alerts[0].Read = false
	p := New(testConfig(60000), backend)
	t.Cleanup(p.Stop)
	p.SetEnabled(false)
	p.SetSession(employeeSession())

	require.NoError(t, p.Refresh(context.Background()))
	assert.True(t, p.Snapshot().HasUnread)
	before := backend.lists.Load()

	require.NoError(t, p.MarkAsRead(context.Background(), "a1"))
	assert.Equal(t, []string{"a1"}, backend.marked)
	assert.Greater(t, backend.lists.Load(), before)
	assert.False(t, p.Snapshot().HasUnread)
}

func TestPoller_FailureIsStoredAndLoopContinues(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("boom")}
	p := New(testConfig(10), backend)
	t.Cleanup(p.Stop)

	p.SetSession(employeeSession())
	require.Eventually(t, func() bool { return p.Snapshot().Error != nil }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "boom", *p.Snapshot().Error)

	backend.mu.Lock()
	backend.listErr = nil
	backend.alerts = sampleAlerts()
	backend.mu.Unlock()

	require.Eventually(t, func() bool { return p.Snapshot().Error == nil }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Snapshot().Polling)
}

func TestPoller_ModalToggleIsIndependent(t *testing.T) {
	p := New(testConfig(60000), &fakeBackend{})
	t.Cleanup(p.Stop)

	var seen []bool
	var mu sync.Mutex
	unsubscribe := p.Observe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s.IsOpen)
	})

	p.OpenModal()
	p.ToggleModal()
	p.ToggleModal()
	p.CloseModal()
	unsubscribe()
	p.OpenModal()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false, true, false}, seen)
	assert.True(t, p.Snapshot().IsOpen)
}

func TestPoller_StopDiscardsLateResults(t *testing.T) {
	backend := &fakeBackend{alerts: sampleAlerts(), block: make(chan struct{})}
	p := New(testConfig(60000), backend)
	p.SetSession(employeeSession())
	require.Eventually(t, func() bool { return backend.lists.Load() == 1 }, time.Second, 5*time.Millisecond)

	p.Stop()
	close(backend.block)

	s := p.Snapshot()
	assert.Empty(t, s.Notifications)
	assert.False(t, s.Polling)
}
