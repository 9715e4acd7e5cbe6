// Package seed 는 개발용 백엔드에 임의의 사장님, 가게, 공고, 알바님 계정을 채운다.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/eunji0124/The-Julge-sub000/internal/session"
	"github.com/eunji0124/The-Julge-sub000/internal/utils"
)

// Seeder 는 로그인이 필요한 요청을 위해 세션을 직접 바꾼다.
type Seeder struct {
	repo        *repository.Repository
	session     *session.Store
	password    string
	emailDomain string
	now         func() time.Time
}

func New(repo *repository.Repository, store *session.Store, password, emailDomain string) *Seeder {
	return &Seeder{
		repo:        repo,
		session:     store,
		password:    password,
		emailDomain: emailDomain,
		now:         time.Now,
	}
}

func (s *Seeder) signupAndLogin(ctx context.Context, prefix string, t domain.UserType) (domain.User, error) {
	email := utils.GenerateRandomEmail(prefix, s.emailDomain)
	if _, err := s.repo.Signup(ctx, repository.SignupInput{Email: email, Password: s.password, Type: t}); err != nil {
		return domain.User{}, fmt.Errorf("seed: signup %s: %w", email, err)
	}
	return s.login(ctx, email)
}

func (s *Seeder) login(ctx context.Context, email string) (domain.User, error) {
	res, err := s.repo.Login(ctx, email, s.password)
	if err != nil {
		return domain.User{}, fmt.Errorf("seed: login %s: %w", email, err)
	}
	if err := s.session.SetAuth(ctx, res.Token, res.User); err != nil {
		return domain.User{}, err
	}
	return res.User, nil
}

// Employers 는 사장님 n 명과 각자의 가게를 만든다. 만든 사장님의 이메일을 돌려준다.
func (s *Seeder) Employers(ctx context.Context, n int) ([]string, error) {
	var emails []string
	for i := 0; i < n; i++ {
		user, err := s.signupAndLogin(ctx, "boss", domain.UserTypeEmployer)
		if err != nil {
			return emails, err
		}

		shop, err := s.repo.CreateShop(ctx, utils.GenerateRandomShop())
		if err != nil {
			return emails, fmt.Errorf("seed: create shop for %s: %w", user.Email, err)
		}
		slog.Info("사장님과 가게를 만들었습니다", "email", user.Email, "shop", shop.Name)
		emails = append(emails, user.Email)
	}
	return emails, nil
}

// Notices 는 email 사장님의 가게에 공고 n 개를 올린다.
func (s *Seeder) Notices(ctx context.Context, email string, n int) (int, error) {
	if _, err := s.login(ctx, email); err != nil {
		return 0, err
	}

	// 로그인 응답에는 가게가 없을 수 있어 사용자 정보를 다시 받는다
	user, err := s.repo.GetUser(ctx, s.session.Snapshot().UserID())
	if err != nil {
		return 0, err
	}
	if user.Shop == nil {
		return 0, repository.ErrNoShop
	}
	shop := user.Shop.Unwrap()

	created := 0
	for i := 0; i < n; i++ {
		if _, err := s.repo.CreateShopNotice(ctx, shop.ID, utils.GenerateRandomNotice(shop.OriginalHourlyPay, s.now())); err != nil {
			return created, fmt.Errorf("seed: create notice: %w", err)
		}
		created++
	}
	return created, nil
}

// Employees 는 프로필까지 채운 알바님 n 명을 만든다.
func (s *Seeder) Employees(ctx context.Context, n int) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		user, err := s.signupAndLogin(ctx, "worker", domain.UserTypeEmployee)
		if err != nil {
			return created, err
		}
		if _, err := s.repo.UpdateUser(ctx, user.ID, utils.GenerateRandomProfile()); err != nil {
			return created, fmt.Errorf("seed: update profile of %s: %w", user.Email, err)
		}
		created++
	}
	return created, nil
}

// Close 는 마지막으로 로그인한 세션을 지운다.
func (s *Seeder) Close(ctx context.Context) error {
	if err := s.session.ClearAuth(ctx); err != nil && !errors.Is(err, session.ErrNotAuthenticated) {
		return err
	}
	return nil
}
