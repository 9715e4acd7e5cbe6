package domain

import (
	"fmt"
	"time"
)

// Alert 는 백엔드 알림 원본이다.
type Alert struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"createdAt"`
	Result      ApplicationStatus  `json:"result"`
	Read        bool               `json:"read"`
	Application *Item[Application] `json:"application,omitempty"`
	Shop        *Item[Shop]        `json:"shop,omitempty"`
	Notice      *Item[Notice]      `json:"notice,omitempty"`
}

// Status 는 알림의 결과를 돌려준다. result 가 비어 있으면 지원 상태를 본다.
func (a Alert) Status() ApplicationStatus {
	if a.Result != "" {
		return a.Result
	}
	if a.Application != nil {
		return a.Application.Item.Status
	}
	return ""
}

// Resolved 는 승인 또는 거절로 결론이 난 알림인지 확인한다.
func (a Alert) Resolved() bool {
	s := a.Status()
	return s == ApplicationAccepted || s == ApplicationRejected
}

type Notification struct {
	ID          string            `json:"id"`
	ShopName    string            `json:"shopName"`
	Status      ApplicationStatus `json:"status"`
	Time        time.Time         `json:"time"`
	Read        bool              `json:"read"`
	NoticeID    string            `json:"noticeId,omitempty"`
	ShopID      string            `json:"shopId,omitempty"`
	NoticeStart time.Time         `json:"noticeStart"`
	WorkHour    int               `json:"workhour,omitempty"`
}

func NewNotification(a Alert) Notification {
	n := Notification{
		ID:     a.ID,
		Status: a.Status(),
		Time:   a.CreatedAt,
		Read:   a.Read,
	}
	if a.Shop != nil {
		n.ShopName = a.Shop.Item.Name
		n.ShopID = a.Shop.Item.ID
	}
	if a.Notice != nil {
		n.NoticeID = a.Notice.Item.ID
		n.NoticeStart = a.Notice.Item.StartsAt
		n.WorkHour = a.Notice.Item.WorkHour
	}
	return n
}

// Elapsed 는 "3분 전" 같은 상대 시간을 돌려준다.
func Elapsed(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "방금 전"
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d일 전", int(d/(24*time.Hour)))
	}
}
