package repository

import (
	"context"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type statusBody struct {
	Status domain.ApplicationStatus `json:"status"`
}

func applicationsPath(shopID, noticeID string) string {
	return endpoint("shops", shopID, "notices", noticeID, "applications")
}

func (r *Repository) Apply(ctx context.Context, shopID, noticeID string) (domain.Application, error) {
	res, err := gateway.Post[domain.Item[domain.Application]](ctx, r.gateway, applicationsPath(shopID, noticeID), nil)
	if err != nil {
		return domain.Application{}, err
	}
	return res.Unwrap(), nil
}

func (r *Repository) CancelApplication(ctx context.Context, shopID, noticeID, applicationID string) (domain.Application, error) {
	return r.setApplicationStatus(ctx, shopID, noticeID, applicationID, domain.ApplicationCanceled)
}

func (r *Repository) ListNoticeApplications(ctx context.Context, shopID, noticeID string, offset, limit int) (domain.List[domain.Application], error) {
	if shopID == "" {
		return domain.List[domain.Application]{}, ErrNoShop
	}
	if limit <= 0 {
		limit = r.cfg.Pagination.ApplicantLimit
	}
	return gateway.Get[domain.List[domain.Application]](ctx, r.gateway, applicationsPath(shopID, noticeID), pageQuery(offset, limit))
}

// DecideApplication 은 사장님이 지원을 승인하거나 거절한다.
func (r *Repository) DecideApplication(ctx context.Context, shopID, noticeID, applicationID string, status domain.ApplicationStatus) (domain.Application, error) {
	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return domain.Application{}, ErrInvalidDecision
	}
	if shopID == "" {
		return domain.Application{}, ErrNoShop
	}
	return r.setApplicationStatus(ctx, shopID, noticeID, applicationID, status)
}

func (r *Repository) setApplicationStatus(ctx context.Context, shopID, noticeID, applicationID string, status domain.ApplicationStatus) (domain.Application, error) {
	path := applicationsPath(shopID, noticeID) + endpoint(applicationID)
	res, err := gateway.Put[domain.Item[domain.Application]](ctx, r.gateway, path, statusBody{Status: status})
	if err != nil {
		return domain.Application{}, err
	}
	return res.Unwrap(), nil
}
