package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

// Auth 는 로그인, 회원가입, 로그아웃 흐름이다.
type Auth struct {
	backend AuthBackend
	session SessionWriter
	sink    feedback.Sink
	nav     feedback.Navigator
}

func NewAuth(backend AuthBackend, session SessionWriter, sink feedback.Sink, nav feedback.Navigator) *Auth {
	return &Auth{
		backend: backend,
		session: session,
		sink:    sink,
		nav:     nav,
	}
}

// Login 이 성공하면 세션을 채우고 홈으로 이동한다.
// 비밀번호가 틀리면 토스트 없이 모달만 띄운다.
func (a *Auth) Login(ctx context.Context, email, password string) (domain.User, error) {
	res, err := a.backend.Login(ctx, email, password)
	switch {
	case errors.Is(err, repository.ErrPasswordMismatch):
		a.sink.Modal(alertModal(MsgPasswordMismatch, ""))
		return domain.User{}, err
	case errors.Is(err, repository.ErrLoginInvalid):
		clientErrorModal(a.sink, err)
		return domain.User{}, err
	case err != nil:
		return domain.User{}, err
	}

	if err := a.session.SetAuth(ctx, res.Token, res.User); err != nil {
		return domain.User{}, fmt.Errorf("query: save session: %w", err)
	}
	a.nav.Redirect("/")
	return res.User, nil
}

func (a *Auth) Signup(ctx context.Context, in repository.SignupInput) (domain.User, error) {
	u, err := a.backend.Signup(ctx, in)
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		a.sink.Modal(alertModal(MsgEmailTaken, ""))
		return domain.User{}, err
	case err != nil:
		clientErrorModal(a.sink, err)
		return domain.User{}, err
	}

	a.sink.Modal(alertModal(MsgSignupComplete, gateway.LoginRoute))
	a.nav.Redirect(gateway.LoginRoute)
	return u, nil
}

func (a *Auth) Logout(ctx context.Context) error {
	if err := a.session.ClearAuth(ctx); err != nil {
		return err
	}
	a.nav.Redirect("/")
	return nil
}
