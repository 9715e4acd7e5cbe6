package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/alert"
	"github.com/eunji0124/The-Julge-sub000/internal/cache"
	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/eunji0124/The-Julge-sub000/internal/recent"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/eunji0124/The-Julge-sub000/internal/session"
	"github.com/eunji0124/The-Julge-sub000/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler *Handler
	session *session.Store
	poller  *alert.Poller
	rec     *feedback.Recorder

	mu      sync.Mutex
	queries []url.Values
}

func (s *testServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.queries = append(s.queries, r.URL.Query())
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *testServer) lastQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return nil
	}
	return s.queries[len(s.queries)-1]
}

// newTestServer 는 가짜 백엔드 위에 핸들러 전체를 띄운다.
func newTestServer(t *testing.T, routes func(r chi.Router)) *testServer {
	t.Helper()

	ts := &testServer{}
	backend := chi.NewRouter()
	backend.Use(ts.record)
	routes(backend)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.Timeout = 1000
	cfg.Poller.Enabled = false
	cfg.Poller.Interval = 60000
	cfg.Poller.PageSize = 50
	cfg.Pagination.NoticeLimit = 6
	cfg.Pagination.RecommendLimit = 9
	cfg.Pagination.ApplicationLimit = 5
	cfg.Pagination.ShopNoticeLimit = 6
	cfg.Pagination.ApplicantLimit = 5

	mem := storage.NewMemory()
	store := session.NewStore(mem)
	rec := feedback.NewRecorder()
	repo := repository.NewRepository(cfg, gateway.New(cfg, store, rec, rec))
	poller := alert.New(cfg, repo)
	store.Subscribe(poller.SetSession)
	t.Cleanup(poller.Stop)

	h, err := NewHandler(cfg, repo, store, rec, recent.NewStore(mem), poller, cache.New[domain.User](time.Minute, time.Second))
	require.NoError(t, err)
	h.RegisterRoutes()
	t.Cleanup(h.Close)

	ts.handler = h
	ts.session = store
	ts.poller = poller
	ts.rec = rec
	return ts
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) testResponse {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	s.handler.Mux.ServeHTTP(rr, req)

	var res testResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res
}

func (s *testServer) login(t *testing.T, u domain.User) {
	t.Helper()
	require.NoError(t, s.session.SetAuth(context.Background(), "token-1", u))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func noticeItem(id string) map[string]any {
	return map[string]any{"item": map[string]any{
		"id":        id,
		"hourlyPay": 12000,
		"startsAt":  "2099-01-01T09:00:00Z",
		"workhour":  4,
		"closed":    false,
		"shop": map[string]any{"item": map[string]any{
			"id": "shop-1", "name": "도토리 식당", "address1": "서울시 마포구", "originalHourlyPay": 10000,
		}},
	}}
}

var (
	employee = domain.User{
		ID: "user-1", Email: "worker@example.com", Type: domain.UserTypeEmployee,
		Name: "김알바", Phone: "010-1234-5678", Address: "서울시 마포구",
	}
	employer = domain.User{ID: "user-2", Email: "boss@example.com", Type: domain.UserTypeEmployer}
)

func TestLogin_SetsSessionAndRedirects(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Post("/token", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"item": map[string]any{
				"token": "token-1",
				"user":  map[string]any{"item": employee},
			}})
		})
	})

	res := ts.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "worker@example.com", "password": "password1",
	})
	require.True(t, res.Success, res.Message)
	assert.True(t, ts.session.Snapshot().IsAuthenticated)

	res = ts.do(t, http.MethodGet, "/auth/session", nil)
	require.True(t, res.Success)
	assert.JSONEq(t, `{"isAuthenticated":true,"user":{"id":"user-1","email":"worker@example.com","type":"employee","name":"김알바","phone":"010-1234-5678","address":"서울시 마포구"}}`, string(res.Data))

	res = ts.do(t, http.MethodGet, "/feedback", nil)
	var fb feedback.Snapshot
	require.NoError(t, json.Unmarshal(res.Data, &fb))
	assert.Equal(t, []string{"/"}, fb.Redirects)
}

func TestLogin_ValidationMessageIsKorean(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "nope", "password": "password1"})
	assert.False(t, res.Success)
	assert.Equal(t, "email은(는) 올바른 이메일 형식이어야 합니다", res.Message)

	res = ts.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com", "password": "short"})
	assert.False(t, res.Success)
	assert.Equal(t, "password은(는) 8 이상이어야 합니다", res.Message)
}

func TestLogin_PasswordMismatch(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Post("/token", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "존재하지 않거나 비밀번호가 일치하지 않습니다"})
		})
	})

	res := ts.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com", "password": "password1"})
	assert.False(t, res.Success)
	assert.Equal(t, repository.ErrPasswordMismatch.Error(), res.Message)
	assert.False(t, ts.session.Snapshot().IsAuthenticated)
}

func TestSignup_PasswordConfirm(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"email": "a@b.com", "password": "password1", "passwordConfirm": "password2", "type": "employee",
	})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "passwordConfirm")
}

func TestRequireSession(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodGet, "/me/profile", nil)
	assert.False(t, res.Success)
	assert.Equal(t, gateway.MsgLoginRequired, res.Message)
}

func TestRequireRole(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})
	ts.login(t, employee)

	res := ts.do(t, http.MethodGet, "/my-shop/notices", nil)
	assert.False(t, res.Success)
	assert.Equal(t, "권한이 없습니다.", res.Message)
}

func TestSetNoticeSort(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Get("/notices", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"offset": 0, "limit": 6, "count": 1, "hasNext": false,
				"items": []any{noticeItem("n1")},
			})
		})
	})

	res := ts.do(t, http.MethodPut, "/notices/sort", map[string]string{"sort": "최신순"})
	assert.False(t, res.Success)

	res = ts.do(t, http.MethodPut, "/notices/sort", map[string]string{"sort": "시급많은순"})
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "pay", ts.lastQuery().Get("sort"))

	var body noticeListResponse
	require.NoError(t, json.Unmarshal(res.Data, &body))
	assert.Equal(t, domain.SortPayDesc, body.Params.Sort)
	assert.Equal(t, 1, body.State.Total)
	require.Len(t, body.State.Data, 1)
}

func TestSetNoticeFilter_RejectsUnknownDistrict(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodPut, "/notices/filter", map[string]any{"locations": []string{"부산시 해운대구"}})
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "서울시 구 이름")
}

func TestApplyNotice_EmployerGetsModal(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Get("/shops/shop-1/notices/n1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, noticeItem("n1"))
		})
		r.Post("/shops/shop-1/notices/n1/applications", func(w http.ResponseWriter, r *http.Request) {
			t.Error("사장님 지원 요청이 백엔드로 나가면 안 된다")
		})
	})
	ts.login(t, employer)

	res := ts.do(t, http.MethodPost, "/shops/shop-1/notices/n1/application", nil)
	assert.False(t, res.Success)
	assert.Equal(t, query.MsgEmployerApply, res.Message)

	fb := ts.rec.Drain()
	require.Len(t, fb.Modals, 1)
	assert.Equal(t, query.MsgEmployerApply, fb.Modals[0].Message)
}

func TestApplyNotice_Employee(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Get("/shops/shop-1/notices/n1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, noticeItem("n1"))
		})
		r.Post("/shops/shop-1/notices/n1/applications", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{"item": map[string]any{"id": "app-1", "status": "pending"}})
		})
	})
	ts.login(t, employee)

	res := ts.do(t, http.MethodPost, "/shops/shop-1/notices/n1/application", nil)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, query.MsgApplied, res.Message)

	res = ts.do(t, http.MethodGet, "/notices/recent", nil)
	require.True(t, res.Success)
	var recents query.State[[]domain.NoticeView]
	require.NoError(t, json.Unmarshal(res.Data, &recents))
	assert.Empty(t, recents.Data, "지원만 했을 때는 최근 본 공고에 남지 않는다")
}

func TestApplyNotice_LoggedOutGetsLoginModal(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Get("/shops/shop-1/notices/n1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, noticeItem("n1"))
		})
		r.Post("/shops/shop-1/notices/n1/applications", func(w http.ResponseWriter, r *http.Request) {
			t.Error("비로그인 지원 요청이 백엔드로 나가면 안 된다")
		})
	})

	res := ts.do(t, http.MethodPost, "/shops/shop-1/notices/n1/application", nil)
	assert.False(t, res.Success)
	assert.Equal(t, gateway.MsgLoginRequired, res.Message)

	fb := ts.rec.Drain()
	require.Len(t, fb.Modals, 1)
	assert.Equal(t, gateway.MsgLoginRequired, fb.Modals[0].Message)
	assert.Equal(t, gateway.LoginRoute, fb.Modals[0].Action)
}

func TestAlertModal(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})
	ts.login(t, employee)

	res := ts.do(t, http.MethodPost, "/alerts/modal/jump", nil)
	assert.False(t, res.Success)

	res = ts.do(t, http.MethodPost, "/alerts/modal/toggle", nil)
	require.True(t, res.Success)
	assert.True(t, ts.poller.Snapshot().IsOpen)

	res = ts.do(t, http.MethodPost, "/alerts/modal/close", nil)
	require.True(t, res.Success)
	assert.False(t, ts.poller.Snapshot().IsOpen)
}

func TestGetAlerts_Refresh(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {
		r.Get("/users/user-1/alerts", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"offset": 0, "limit": 50, "count": 2, "hasNext": false,
				"items": []any{
					map[string]any{"item": map[string]any{"id": "a1", "createdAt": "2026-10-01T10:00:00Z", "result": "accepted", "read": false}},
					map[string]any{"item": map[string]any{"id": "a2", "createdAt": "2026-10-02T10:00:00Z", "result": "pending", "read": true}},
				},
			})
		})
	})
	ts.login(t, employee)

	res := ts.do(t, http.MethodGet, "/alerts?refresh=1", nil)
	require.True(t, res.Success, res.Message)

	var snap alert.Snapshot
	require.NoError(t, json.Unmarshal(res.Data, &snap))
	assert.True(t, snap.HasUnread)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, "a1", snap.Notifications[0].ID)
}

func TestSetVisibility(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodPut, "/visibility", map[string]any{})
	assert.False(t, res.Success)

	res = ts.do(t, http.MethodPut, "/visibility", map[string]any{"visible": false})
	require.True(t, res.Success)
	assert.False(t, ts.poller.Inputs().Visible)
}

func TestSetLocation(t *testing.T) {
	ts := newTestServer(t, func(r chi.Router) {})

	res := ts.do(t, http.MethodPut, "/location", map[string]string{"path": "/notices"})
	require.True(t, res.Success)
	assert.Equal(t, "/notices", ts.rec.Location())
}
