package repository

import (
	"context"
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type LoginResult struct {
	Token string
	User  domain.User
}

type loginResponse struct {
	Token string                   `json:"token"`
	User  domain.Item[domain.User] `json:"user"`
}

func (r *Repository) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	res, err := gateway.Post[domain.Item[loginResponse]](ctx, r.gateway, gateway.LoginPath, body)
	if err != nil {
		return LoginResult{}, mapStatus(err, map[int]error{
			http.StatusNotFound:   ErrPasswordMismatch,
			http.StatusBadRequest: ErrLoginInvalid,
		})
	}

	item := res.Unwrap()
	return LoginResult{Token: item.Token, User: item.User.Unwrap()}, nil
}

type SignupInput struct {
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Type     domain.UserType `json:"type"`
}

func (r *Repository) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	res, err := gateway.Post[domain.Item[domain.User]](ctx, r.gateway, "/users", in)
	if err != nil {
		return domain.User{}, mapStatus(err, map[int]error{http.StatusConflict: ErrEmailTaken})
	}
	return res.Unwrap(), nil
}

func (r *Repository) GetUser(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, ErrNoUser
	}

	res, err := gateway.Get[domain.Item[domain.User]](ctx, r.gateway, endpoint("users", id), nil)
	if err != nil {
		return domain.User{}, err
	}
	return res.Unwrap(), nil
}

type ProfileInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Bio     string `json:"bio"`
}

func (r *Repository) UpdateUser(ctx context.Context, id string, in ProfileInput) (domain.User, error) {
	if id == "" {
		return domain.User{}, ErrNoUser
	}

	res, err := gateway.Put[domain.Item[domain.User]](ctx, r.gateway, endpoint("users", id), in)
	if err != nil {
		return domain.User{}, err
	}
	return res.Unwrap(), nil
}

func (r *Repository) ListUserApplications(ctx context.Context, userID string, offset, limit int) (domain.List[domain.Application], error) {
	if userID == "" {
		return domain.List[domain.Application]{}, ErrNoUser
	}
	if limit <= 0 {
		limit = r.cfg.Pagination.ApplicationLimit
	}

	return gateway.Get[domain.List[domain.Application]](ctx, r.gateway, endpoint("users", userID, "applications"), pageQuery(offset, limit))
}
