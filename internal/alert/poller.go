// Package alert 는 알바님의 지원 결과 알림을 주기적으로 받아 오는 폴러다.
//
// 폴링 여부는 입력값(로그인, 역할, 화면 표시 여부, 사용 여부) 하나로부터 계산하고,
// 입력이 바뀔 때마다 다시 계산해 루프를 시작하거나 멈춘다.
package alert

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
)

// 백엔드가 hasNext 를 잘못 내려줘도 끝나도록 막는다.
const maxPages = 100

var ErrNoRecipient = errors.New("alert: no logged-in user")

type Backend interface {
	ListAlerts(ctx context.Context, userID string, offset, limit int) (domain.List[domain.Alert], error)
	MarkAlertRead(ctx context.Context, userID, alertID string) error
}

type Inputs struct {
	Authenticated   bool            `json:"authenticated"`
	Role            domain.UserType `json:"role"`
	Visible         bool            `json:"visible"`
	Enabled         bool            `json:"enabled"`
	VisibilityAware bool            `json:"visibilityAware"`
}

func (in Inputs) ShouldPoll() bool {
	if !in.Authenticated || in.Role != domain.UserTypeEmployee || !in.Enabled {
		return false
	}
	return !in.VisibilityAware || in.Visible
}

// Recipient 는 알림을 받는 사용자다. 화면에는 내보내지 않는다.
type Recipient struct {
	UserID string
	Email  string
	Name   string
}

type Snapshot struct {
	Notifications []domain.Notification `json:"notifications"`
	HasUnread     bool                  `json:"hasUnread"`
	IsOpen        bool                  `json:"isOpen"`
	IsLoading     bool                  `json:"isLoading"`
	Polling       bool                  `json:"polling"`
	Error         *string               `json:"error"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	Recipient     Recipient             `json:"-"`
}

type Poller struct {
	backend  Backend
	interval time.Duration
	pageSize int

	mu        sync.Mutex
	inputs    Inputs
	recipient Recipient
	state     Snapshot
	cancel    context.CancelFunc
	gen       uint64
	stopped   bool
	observers map[int]func(Snapshot)
	nextObs   int

	group sync.WaitGroup
}

func New(cfg *config.Config, backend Backend) *Poller {
	return &Poller{
		backend:  backend,
		interval: cfg.PollInterval(),
		pageSize: cfg.Poller.PageSize,
		inputs: Inputs{
			Visible:         true,
			Enabled:         cfg.Poller.Enabled,
			VisibilityAware: cfg.Poller.VisibilityAware,
		},
		state:     Snapshot{Notifications: []domain.Notification{}},
		observers: make(map[int]func(Snapshot)),
	}
}

func (p *Poller) Inputs() Inputs {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.inputs
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshotLocked()
}

// SetSession 은 session.Store 의 구독 콜백으로 쓴다.
func (p *Poller) SetSession(s domain.AuthSession) {
	var next Recipient
	if s.IsAuthenticated {
		next = Recipient{UserID: s.User.ID, Email: s.User.Email, Name: s.User.Name}
	}

	p.mu.Lock()
	if next.UserID != p.recipient.UserID {
		// 다른 사용자의 알림이 남지 않게 비우고 루프도 새로 시작한다
		p.stopLoopLocked()
		p.state = Snapshot{Notifications: []domain.Notification{}, IsOpen: p.state.IsOpen}
	}
	p.recipient = next
	p.inputs.Authenticated = s.IsAuthenticated
	p.inputs.Role = ""
	if s.User != nil {
		p.inputs.Role = s.User.Type
	}
	p.reconcileLocked()
	p.mu.Unlock()
}

func (p *Poller) SetVisible(visible bool) {
	p.update(func(in *Inputs) { in.Visible = visible })
}

func (p *Poller) SetEnabled(enabled bool) {
	p.update(func(in *Inputs) { in.Enabled = enabled })
}

func (p *Poller) update(fn func(in *Inputs)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(&p.inputs)
	p.reconcileLocked()
}

// reconcileLocked 는 shouldPoll 이 바뀌었을 때만 루프를 켜거나 끈다.
func (p *Poller) reconcileLocked() {
	should := !p.stopped && p.recipient.UserID != "" && p.inputs.ShouldPoll()
	switch {
	case should && p.cancel == nil:
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		p.gen++
		p.state.Polling = true
		p.group.Add(1)
		go p.loop(ctx, p.gen, p.recipient.UserID)
	case !should && p.cancel != nil:
		p.stopLoopLocked()
	}
}

func (p *Poller) stopLoopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	p.state.Polling = false
	p.state.IsLoading = false
}

func (p *Poller) loop(ctx context.Context, gen uint64, userID string) {
	defer p.group.Done()

	// 루프마다 따로 둔다. 멈춘 루프의 조회가 새 루프의 첫 조회를 막지 않는다.
	var inFlight atomic.Bool

	slog.Info("알림 폴링을 시작합니다", "userID", userID, "interval", p.interval)
	p.tick(ctx, &inFlight, gen, userID)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("알림 폴링을 멈춥니다", "userID", userID)
			return
		case <-ticker.C:
			p.tick(ctx, &inFlight, gen, userID)
		}
	}
}

// tick 은 이전 조회가 끝나지 않았으면 아무것도 하지 않는다.
func (p *Poller) tick(ctx context.Context, inFlight *atomic.Bool, gen uint64, userID string) {
	if !inFlight.CompareAndSwap(false, true) {
		return
	}

	p.group.Add(1)
	go func() {
		defer p.group.Done()
		defer inFlight.Store(false)

		p.fetch(ctx, gen, userID)
	}()
}

// Refresh 는 주기와 상관없이 지금 목록을 다시 받아 온다.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	gen, userID := p.gen, p.recipient.UserID
	p.mu.Unlock()

	if userID == "" {
		return ErrNoRecipient
	}
	return p.fetch(ctx, gen, userID)
}

// MarkAsRead 는 읽음 처리 후 결과와 상관없이 목록을 다시 받는다. 화면 상태를 미리 바꾸지 않는다.
func (p *Poller) MarkAsRead(ctx context.Context, alertID string) error {
	p.mu.Lock()
	gen, userID := p.gen, p.recipient.UserID
	p.mu.Unlock()

	if userID == "" {
		return ErrNoRecipient
	}

	markErr := p.backend.MarkAlertRead(ctx, userID, alertID)
	if markErr != nil {
		slog.Error("알림을 읽음으로 바꾸지 못했습니다", "alertID", alertID, "error", markErr)
		p.setError(gen, userID, markErr)
	}

	fetchErr := p.fetch(ctx, gen, userID)
	if markErr != nil {
		return markErr
	}
	return fetchErr
}

func (p *Poller) fetch(ctx context.Context, gen uint64, userID string) error {
	p.mu.Lock()
	if p.current(gen, userID) {
		p.state.IsLoading = true
	}
	p.mu.Unlock()

	alerts, err := p.fetchAll(ctx, userID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		slog.Error("알림을 불러오지 못했습니다", "userID", userID, "error", err)
		p.setError(gen, userID, err)
		return err
	}

	notifications := make([]domain.Notification, 0, len(alerts))
	hasUnread := false
	for _, a := range alerts {
		if !a.Read {
			hasUnread = true
		}
		if a.Resolved() {
			notifications = append(notifications, domain.NewNotification(a))
		}
	}
	slices.SortStableFunc(notifications, func(a, b domain.Notification) int {
		return b.Time.Compare(a.Time)
	})

	p.mu.Lock()
	if !p.current(gen, userID) {
		p.mu.Unlock()
		return nil
	}
	p.state.Notifications = notifications
	p.state.HasUnread = hasUnread
	p.state.IsLoading = false
	p.state.Error = nil
	p.state.UpdatedAt = time.Now()
	snap, observers := p.snapshotLocked(), p.observersLocked()
	p.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return nil
}

func (p *Poller) fetchAll(ctx context.Context, userID string) ([]domain.Alert, error) {
	var all []domain.Alert
	offset := 0
	for page := 0; page < maxPages; page++ {
		list, err := p.backend.ListAlerts(ctx, userID, offset, p.pageSize)
		if err != nil {
			return nil, err
		}
		items := list.Unwrap()
		all = append(all, items...)
		if !list.HasNext || len(items) == 0 {
			break
		}
		offset += len(items)
	}
	return all, nil
}

func (p *Poller) setError(gen uint64, userID string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.current(gen, userID) {
		return
	}
	msg := err.Error()
	p.state.Error = &msg
	p.state.IsLoading = false
}

// current 는 결과가 지금의 사용자와 루프에 속하는지 확인한다. 멈춘 뒤 도착한 결과는 버린다.
func (p *Poller) current(gen uint64, userID string) bool {
	return !p.stopped && gen == p.gen && userID == p.recipient.UserID
}

func (p *Poller) OpenModal() {
	p.setOpen(func(bool) bool { return true })
}

func (p *Poller) CloseModal() {
	p.setOpen(func(bool) bool { return false })
}

func (p *Poller) ToggleModal() {
	p.setOpen(func(open bool) bool { return !open })
}

// 모달을 닫아도 폴링은 계속된다.
func (p *Poller) setOpen(fn func(bool) bool) {
	p.mu.Lock()
	p.state.IsOpen = fn(p.state.IsOpen)
	snap, observers := p.snapshotLocked(), p.observersLocked()
	p.mu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}

// Observe 는 새 목록을 받을 때마다 fn 을 부른다. 돌려받은 함수로 구독을 끊는다.
func (p *Poller) Observe(fn func(Snapshot)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextObs
	p.nextObs++
	p.observers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.observers, id)
	}
}

// Stop 은 루프를 멈추고 진행 중인 조회가 끝나길 기다린다. 늦게 도착한 결과는 반영하지 않는다.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.stopLoopLocked()
	p.mu.Unlock()

	p.group.Wait()
}

func (p *Poller) snapshotLocked() Snapshot {
	s := p.state
	s.Notifications = slices.Clone(p.state.Notifications)
	if s.Notifications == nil {
		s.Notifications = []domain.Notification{}
	}
	s.Recipient = p.recipient
	return s
}

func (p *Poller) observersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(p.observers))
	for _, fn := range p.observers {
		out = append(out, fn)
	}
	return out
}
