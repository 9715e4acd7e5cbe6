package repository

import (
	"context"
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

func (r *Repository) ListAlerts(ctx context.Context, userID string, offset, limit int) (domain.List[domain.Alert], error) {
	if userID == "" {
		return domain.List[domain.Alert]{}, ErrNoUser
	}
	if limit <= 0 {
		limit = r.cfg.Poller.PageSize
	}
	return gateway.Get[domain.List[domain.Alert]](ctx, r.gateway, endpoint("users", userID, "alerts"), pageQuery(offset, limit))
}

// MarkAlertRead 는 알림 하나를 읽음으로 바꾼다. 응답 본문은 쓰지 않는다.
func (r *Repository) MarkAlertRead(ctx context.Context, userID, alertID string) error {
	if userID == "" {
		return ErrNoUser
	}
	_, err := r.gateway.Do(ctx, gateway.Request{
		Method: http.MethodPut,
		Path:   endpoint("users", userID, "alerts", alertID),
	})
	return err
}
