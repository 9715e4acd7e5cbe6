// Package feedback 는 사용자에게 보이는 짧은 피드백(토스트, 모달)과 화면 이동을 다룬다.
package feedback

import (
	"log/slog"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type ModalKind string

const (
	ModalAlert   ModalKind = "alert"
	ModalConfirm ModalKind = "confirm"
)

type Modal struct {
	Kind    ModalKind `json:"kind"`
	Message string    `json:"message"`
	// 확인 버튼을 눌렀을 때 이동할 경로. 비어 있으면 닫기만 한다.
	Action string `json:"action,omitempty"`
}

type Sink interface {
	Toast(level Level, message string)
	Modal(m Modal)
}

type Navigator interface {
	Location() string
	Redirect(path string)
}

// Snapshot 은 Recorder 가 모아 둔 피드백이다.
type Snapshot struct {
	Toasts    []Toast  `json:"toasts"`
	Modals    []Modal  `json:"modals"`
	Location  string   `json:"location"`
	Redirects []string `json:"redirects"`
}

// Recorder 는 피드백을 모아 두었다가 화면이 가져갈 때 비운다.
type Recorder struct {
	mu        sync.Mutex
	toasts    []Toast
	modals    []Modal
	location  string
	redirects []string
	now       func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{location: "/", now: time.Now}
}

func (r *Recorder) Toast(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.toasts = append(r.toasts, Toast{Level: level, Message: message, At: r.now()})
	slog.Info("토스트", "level", level, "message", message)
}

func (r *Recorder) Modal(m Modal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modals = append(r.modals, m)
}

func (r *Recorder) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.location
}

// Navigate 는 화면이 스스로 이동했을 때 현재 위치를 맞춘다.
func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.location = path
}

func (r *Recorder) Redirect(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.location = path
	r.redirects = append(r.redirects, path)
}

// Peek 은 비우지 않고 현재 상태를 돌려준다.
func (r *Recorder) Peek() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Toasts:    append([]Toast{}, r.toasts...),
		Modals:    append([]Modal{}, r.modals...),
		Location:  r.location,
		Redirects: append([]string{}, r.redirects...),
	}
}

func (r *Recorder) Drain() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Toasts:    r.toasts,
		Modals:    r.modals,
		Location:  r.location,
		Redirects: r.redirects,
	}
	if s.Toasts == nil {
		s.Toasts = []Toast{}
	}
	if s.Modals == nil {
		s.Modals = []Modal{}
	}
	if s.Redirects == nil {
		s.Redirects = []string{}
	}
	r.toasts, r.modals, r.redirects = nil, nil, nil
	return s
}
