package query

import (
	"context"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

// 각 조회 단위가 쓰는 백엔드 기능만 골라 둔 인터페이스다. *repository.Repository 가 모두 만족한다.

type NoticeLister interface {
	ListNotices(ctx context.Context, q repository.NoticeQuery) (domain.List[domain.Notice], error)
}

type NoticeBackend interface {
	GetShopNotice(ctx context.Context, shopID, noticeID string) (domain.Notice, error)
	Apply(ctx context.Context, shopID, noticeID string) (domain.Application, error)
	CancelApplication(ctx context.Context, shopID, noticeID, applicationID string) (domain.Application, error)
}

type ApplicationLister interface {
	ListUserApplications(ctx context.Context, userID string, offset, limit int) (domain.List[domain.Application], error)
}

type ProfileBackend interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, id string, in repository.ProfileInput) (domain.User, error)
}

type ShopNoticeLister interface {
	ListShopNotices(ctx context.Context, shopID string, offset, limit int) (domain.List[domain.Notice], error)
}

type ApplicantBackend interface {
	ListNoticeApplications(ctx context.Context, shopID, noticeID string, offset, limit int) (domain.List[domain.Application], error)
	DecideApplication(ctx context.Context, shopID, noticeID, applicationID string, status domain.ApplicationStatus) (domain.Application, error)
}

type AuthBackend interface {
	Login(ctx context.Context, email, password string) (repository.LoginResult, error)
	Signup(ctx context.Context, in repository.SignupInput) (domain.User, error)
}

type SessionReader interface {
	Snapshot() domain.AuthSession
}

type SessionWriter interface {
	SessionReader
	SetAuth(ctx context.Context, token string, user domain.User) error
	ClearAuth(ctx context.Context) error
	UpdateUser(ctx context.Context, user domain.User) error
}

type RecentRecorder interface {
	Add(ctx context.Context, shopID, noticeID string) error
}
