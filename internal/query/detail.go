package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type NoticeDetailData struct {
	Notice      domain.NoticeView       `json:"notice"`
	Application domain.ApplicationState `json:"application"`
	Expired     bool                    `json:"expired"`
}

// NoticeDetail 은 공고 하나와 그 공고에 대한 현재 사용자의 지원 상태다.
type NoticeDetail struct {
	backend NoticeBackend
	session SessionReader
	recent  RecentRecorder
	sink    feedback.Sink

	shopID   string
	noticeID string
	res      *Resource[*NoticeDetailData]
	now      func() time.Time
}

func NewNoticeDetail(backend NoticeBackend, session SessionReader, recent RecentRecorder, sink feedback.Sink, shopID, noticeID string) *NoticeDetail {
	return &NoticeDetail{
		backend:  backend,
		session:  session,
		recent:   recent,
		sink:     sink,
		shopID:   shopID,
		noticeID: noticeID,
		res:      NewResource("notice-detail", nilPtr[NoticeDetailData]),
		now:      time.Now,
	}
}

func (d *NoticeDetail) State() State[*NoticeDetailData] {
	return d.res.State()
}

// Load 는 공고를 받아 오고, 성공하면 최근 본 공고에 기록한다.
func (d *NoticeDetail) Load(ctx context.Context) State[*NoticeDetailData] {
	return d.load(ctx, true)
}

// Reload 는 최근 본 공고를 건드리지 않고 공고만 다시 받아 온다. 지원, 취소 전에 쓴다.
func (d *NoticeDetail) Reload(ctx context.Context) State[*NoticeDetailData] {
	return d.load(ctx, false)
}

func (d *NoticeDetail) load(ctx context.Context, record bool) State[*NoticeDetailData] {
	return d.res.Run(ctx, func(ctx context.Context) (*NoticeDetailData, int, error) {
		n, err := d.backend.GetShopNotice(ctx, d.shopID, d.noticeID)
		if err != nil {
			return nil, 0, err
		}

		if record {
			if err := d.recent.Add(ctx, d.shopID, d.noticeID); err != nil {
				slog.Error("최근 본 공고를 기록하지 못했습니다", "noticeID", d.noticeID, "error", err)
			}
		}

		data := &NoticeDetailData{
			Notice:      domain.NewNoticeView(n, domain.Shop{ID: d.shopID}),
			Application: domain.StateFromApplication(n.CurrentUserApplication),
			Expired:     n.Expired(d.now()),
		}
		return data, 1, nil
	})
}

// Apply 는 지원할 수 있는 사용자인지 먼저 확인하고, 안 되면 요청 없이 모달만 띄운다.
func (d *NoticeDetail) Apply(ctx context.Context) error {
	s := d.session.Snapshot()
	switch {
	case !s.IsAuthenticated:
		d.sink.Modal(alertModal(gateway.MsgLoginRequired, gateway.LoginRoute))
		return ErrLoginRequired
	case s.User.IsEmployer():
		d.sink.Modal(alertModal(MsgEmployerApply, ""))
		return ErrEmployerApply
	case !s.User.HasProfile():
		d.sink.Modal(alertModal(MsgProfileRequired, "/me/profile"))
		return ErrProfileRequired
	}

	current := d.State().Data
	if current != nil && (!current.Notice.IsActive || current.Expired) {
		d.sink.Modal(alertModal(MsgNoticeClosed, ""))
		return ErrNoticeClosed
	}

	app, err := d.backend.Apply(ctx, d.shopID, d.noticeID)
	if err != nil {
		clientErrorModal(d.sink, err)
		return err
	}

	d.setApplication(domain.ApplicationState{Status: domain.StatusPending, ApplicationID: app.ID})
	d.sink.Toast(feedback.LevelSuccess, MsgApplied)
	return nil
}

func (d *NoticeDetail) Cancel(ctx context.Context) error {
	current := d.State().Data
	if current == nil {
		return ErrNotLoaded
	}
	if !current.Application.Cancelable() {
		return ErrNotCancelable
	}

	if _, err := d.backend.CancelApplication(ctx, d.shopID, d.noticeID, current.Application.ApplicationID); err != nil {
		clientErrorModal(d.sink, err)
		return err
	}

	d.setApplication(domain.ApplicationState{Status: domain.StatusCanceled, ApplicationID: current.Application.ApplicationID})
	d.sink.Toast(feedback.LevelInfo, MsgCanceled)
	return nil
}

func (d *NoticeDetail) Close() {
	d.res.Close()
}

func (d *NoticeDetail) setApplication(state domain.ApplicationState) {
	d.res.Update(func(data *NoticeDetailData) *NoticeDetailData {
		if data == nil {
			return nil
		}
		next := *data
		next.Application = state
		return &next
	})
}
