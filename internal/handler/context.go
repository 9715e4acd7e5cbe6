package handler

import (
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
)

type ContextKey string

var UserCtxKey ContextKey = "user"

func userFrom(r *http.Request) domain.User {
	return r.Context().Value(UserCtxKey).(domain.User)
}
