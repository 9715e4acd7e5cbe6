package query

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = domain.User{ID: "owner-1", Email: "owner@example.com", Type: domain.UserTypeEmployer}

func shopRoutes(r chi.Router) {
	r.Post("/shops", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"item": map[string]any{"id": "shop-1", "name": "도토리 식당"}})
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		u := owner
		u.Shop = &domain.Item[domain.Shop]{Item: domain.Shop{ID: "shop-1", Name: "도토리 식당"}}
		writeJSON(w, http.StatusOK, map[string]any{"item": u})
	})
	r.Post("/shops/{shopID}/notices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"item": map[string]any{"id": "notice-1", "hourlyPay": 12000}})
	})
	r.Post("/images/upload", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"url": "https://img.example.com/a.png"})
	})
}

func TestMyShop_RegisterLinksShopToSession(t *testing.T) {
	env := newTestEnv(t, shopRoutes)
	env.login(t, owner)
	m := NewMyShop(env.repo, env.session, env.rec)
	ctx := context.Background()

	_, err := m.PostNotice(ctx, repository.NoticeInput{HourlyPay: 12000})
	assert.ErrorIs(t, err, repository.ErrNoShop)

	shop, err := m.Register(ctx, repository.ShopInput{Name: "도토리 식당", Category: "한식", Address1: "서울시 마포구", OriginalHourlyPay: 10000})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shop.ID)
	assert.Equal(t, "shop-1", env.session.Snapshot().User.ShopID())

	n, err := m.PostNotice(ctx, repository.NoticeInput{HourlyPay: 12000, StartsAt: time.Now().Add(24 * time.Hour), WorkHour: 4})
	require.NoError(t, err)
	assert.Equal(t, "notice-1", n.ID)

	modals := env.rec.Peek().Modals
	require.Len(t, modals, 2)
	assert.Equal(t, "/shops/shop-1/notices/notice-1", modals[1].Action)

	imageURL, err := m.UploadImage(ctx, "a.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a.png", imageURL)
}

func TestMyShop_EmployeesAreRejected(t *testing.T) {
	env := newTestEnv(t, shopRoutes)
	env.login(t, employee)
	m := NewMyShop(env.repo, env.session, env.rec)

	_, err := m.Register(context.Background(), repository.ShopInput{Name: "x"})
	assert.ErrorIs(t, err, ErrEmployerOnly)
	assert.Empty(t, env.log.requests())
}

func TestRecentNotices_SkipsMissing(t *testing.T) {
	env := newTestEnv(t, func(r chi.Router) {
		r.Get("/shops/{shopID}/notices/{noticeID}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "noticeID") == "gone" {
				writeJSON(w, http.StatusNotFound, map[string]string{"message": "존재하지 않는 공고입니다"})
				return
			}
			writeJSON(w, http.StatusOK, noticeItem(chi.URLParam(r, "noticeID"), 11000))
		})
	})
	ctx := context.Background()
	require.NoError(t, env.recent.Add(ctx, "shop-1", "n1"))
	require.NoError(t, env.recent.Add(ctx, "shop-1", "gone"))
	require.NoError(t, env.recent.Add(ctx, "shop-1", "n2"))

	s := NewRecentNotices(env.repo, env.recent).Load(ctx)
	require.Nil(t, s.Error)
	require.Len(t, s.Data, 2)
	assert.Equal(t, "n2", s.Data[0].ID)
	assert.Equal(t, "n1", s.Data[1].ID)
	assert.Empty(t, env.rec.Peek().Toasts)
}
