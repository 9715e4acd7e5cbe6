package domain

import (
	"math"
	"time"
)

type Notice struct {
	ID                     string             `json:"id"`
	HourlyPay              int                `json:"hourlyPay"`
	StartsAt               time.Time          `json:"startsAt"`
	WorkHour               int                `json:"workhour"`
	Description            string             `json:"description"`
	Closed                 bool               `json:"closed"`
	Shop                   *Item[Shop]        `json:"shop,omitempty"`
	CurrentUserApplication *Item[Application] `json:"currentUserApplication,omitempty"`
}

// NoticeView 는 화면에 그대로 뿌리는 공고 카드 모델이다.
type NoticeView struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shopId"`
	Name        string    `json:"name"`
	StartAt     time.Time `json:"startAt"`
	WorkTime    int       `json:"workTime"`
	Location    string    `json:"location"`
	Wage        int       `json:"wage"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	Percentage  *int      `json:"percentage,omitempty"`
	Description string    `json:"description,omitempty"`
}

// NewNoticeView 는 공고와 가게 정보를 합쳐 카드 모델을 만든다.
// 공고에 가게가 포함되어 있으면 인자로 받은 shop 보다 우선한다.
func NewNoticeView(n Notice, shop Shop) NoticeView {
	if n.Shop != nil {
		shop = n.Shop.Item
	}

	return NoticeView{
		ID:          n.ID,
		ShopID:      shop.ID,
		Name:        shop.Name,
		StartAt:     n.StartsAt,
		WorkTime:    n.WorkHour,
		Location:    shop.Address1,
		Wage:        n.HourlyPay,
		ImageURL:    shop.ImageURL,
		IsActive:    !n.Closed,
		Percentage:  RaisePercentage(n.HourlyPay, shop.OriginalHourlyPay),
		Description: n.Description,
	}
}

// RaisePercentage 는 기존 시급 대비 인상률(%)을 반올림해 돌려준다.
// 인상이 아니거나 반올림해서 0% 가 되면 nil 이다. 0% 배지는 보여 주지 않는다.
func RaisePercentage(wage, original int) *int {
	if original <= 0 || wage <= original {
		return nil
	}
	p := int(math.Round(float64(wage-original) / float64(original) * 100))
	if p <= 0 {
		return nil
	}
	return &p
}

// Expired 는 근무 시작 시각이 지났는지 확인한다.
func (n Notice) Expired(now time.Time) bool {
	return !n.StartsAt.IsZero() && n.StartsAt.Before(now)
}
