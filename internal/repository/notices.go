package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

// StartsAtLayout 은 startsAtGte 에 싣는 시각 형식이다. 항상 UTC 로 보낸다.
const StartsAtLayout = "2006-01-02T15:04:05.000Z07:00"

// NoticeQuery 는 GET /notices 의 조회 조건이다. 비어 있는 필드는 파라미터로 보내지 않는다.
type NoticeQuery struct {
	Offset       int
	Limit        int
	Addresses    []string
	Keyword      string
	StartsAtGte  *time.Time
	HourlyPayGte *int
	Sort         string
	Order        string
}

func (q NoticeQuery) Values() url.Values {
	v := pageQuery(q.Offset, q.Limit)
	for _, a := range q.Addresses {
		v.Add("address", a)
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	if q.StartsAtGte != nil {
		v.Set("startsAtGte", q.StartsAtGte.UTC().Format(StartsAtLayout))
	}
	if q.HourlyPayGte != nil {
		v.Set("hourlyPayGte", strconv.Itoa(*q.HourlyPayGte))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

func (r *Repository) ListNotices(ctx context.Context, q NoticeQuery) (domain.List[domain.Notice], error) {
	if q.Limit <= 0 {
		q.Limit = r.cfg.Pagination.NoticeLimit
	}
	return gateway.Get[domain.List[domain.Notice]](ctx, r.gateway, "/notices", q.Values())
}

func (r *Repository) ListShopNotices(ctx context.Context, shopID string, offset, limit int) (domain.List[domain.Notice], error) {
	if shopID == "" {
		return domain.List[domain.Notice]{}, ErrNoShop
	}
	if limit <= 0 {
		limit = r.cfg.Pagination.ShopNoticeLimit
	}
	return gateway.Get[domain.List[domain.Notice]](ctx, r.gateway, endpoint("shops", shopID, "notices"), pageQuery(offset, limit))
}

func (r *Repository) GetShopNotice(ctx context.Context, shopID, noticeID string) (domain.Notice, error) {
	res, err := gateway.Get[domain.Item[domain.Notice]](ctx, r.gateway, endpoint("shops", shopID, "notices", noticeID), nil)
	if err != nil {
		return domain.Notice{}, mapStatus(err, map[int]error{http.StatusNotFound: ErrNoticeNotFound})
	}
	return res.Unwrap(), nil
}

type NoticeInput struct {
	HourlyPay   int       `json:"hourlyPay"`
	StartsAt    time.Time `json:"startsAt"`
	WorkHour    int       `json:"workhour"`
	Description string    `json:"description"`
}

func (r *Repository) CreateShopNotice(ctx context.Context, shopID string, in NoticeInput) (domain.Notice, error) {
	if shopID == "" {
		return domain.Notice{}, ErrNoShop
	}

	res, err := gateway.Post[domain.Item[domain.Notice]](ctx, r.gateway, endpoint("shops", shopID, "notices"), in)
	if err != nil {
		return domain.Notice{}, err
	}
	return res.Unwrap(), nil
}

func (r *Repository) UpdateShopNotice(ctx context.Context, shopID, noticeID string, in NoticeInput) (domain.Notice, error) {
	if shopID == "" {
		return domain.Notice{}, ErrNoShop
	}

	res, err := gateway.Put[domain.Item[domain.Notice]](ctx, r.gateway, endpoint("shops", shopID, "notices", noticeID), in)
	if err != nil {
		return domain.Notice{}, mapStatus(err, map[int]error{http.StatusNotFound: ErrNoticeNotFound})
	}
	return res.Unwrap(), nil
}
