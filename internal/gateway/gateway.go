// Package gateway 는 백엔드로 나가는 모든 요청이 지나가는 단일 파이프라인이다.
// 토큰을 붙이고, 실패를 분류해 토스트를 띄우고, 401 이면 세션을 비운다.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
)

const (
	LoginPath      = "/token"
	LoginRoute     = "/login"
	maxErrorBodyKB = 64
)

type Session interface {
	Token(ctx context.Context) (string, error)
	ClearAuth(ctx context.Context) error
}

// Refresher 는 변경 요청이 성공했을 때 알림을 받는다.
type Refresher interface {
	Trigger(path string)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	sink       feedback.Sink
	nav        feedback.Navigator
	refresher  Refresher
}

func New(cfg *config.Config, session Session, sink feedback.Sink, nav feedback.Navigator) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.APITimeout(),
		},
		session: session,
		sink:    sink,
		nav:     nav,
	}
}

// SetRefresher 는 세션 갱신기를 연결한다. 갱신기가 gateway 를 쓰는 저장소에 의존하기 때문에 생성 후에 붙인다.
func (c *Client) SetRefresher(r Refresher) {
	c.refresher = r
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body 가 io.Reader 가 아니면 JSON 으로 인코딩한다.
	Body        any
	ContentType string
}

// Do 는 요청을 보내고 성공한 응답 본문을 그대로 돌려준다. 디코딩은 호출한 쪽이 한다.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	route := routeOf(r.Path)
	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.transportError(r, route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(r, route, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		requestsTotal.WithLabelValues(r.Method, route, "success").Inc()
		if r.Method != http.MethodGet && c.refresher != nil {
			c.refresher.Trigger(r.Path)
		}
		return body, nil
	}

	return nil, c.statusError(ctx, r, route, resp.StatusCode, body)
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	contentType := r.ContentType
	switch b := r.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode body: %w", err)
		}
		body = bytes.NewReader(data)
		if contentType == "" {
			contentType = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// 저장된 세션이 깨져 있어도 요청은 인증 없이 그대로 보낸다
	token, err := c.session.Token(ctx)
	if err != nil {
		slog.Error("저장된 세션을 읽을 수 없어 인증 없이 요청합니다", "path", r.Path, "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) transportError(r Request, route string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		// 호출한 쪽이 취소한 요청은 사용자에게 알리지 않는다
		requestsTotal.WithLabelValues(r.Method, route, "canceled").Inc()
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		requestsTotal.WithLabelValues(r.Method, route, "timeout").Inc()
		c.sink.Toast(feedback.LevelError, MsgTimeout)
		return fmt.Errorf("%w: %s %s", ErrTimeout, r.Method, r.Path)
	default:
		requestsTotal.WithLabelValues(r.Method, route, "network").Inc()
		c.sink.Toast(feedback.LevelError, MsgNetwork)
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, r.Method, r.Path, err)
	}
}

func (c *Client) statusError(ctx context.Context, r Request, route string, status int, body []byte) error {
	apiErr := &APIError{
		Status:  status,
		Message: errorMessage(body),
		Method:  r.Method,
		Path:    r.Path,
	}

	switch {
	case status == http.StatusUnauthorized && r.Path != LoginPath:
		requestsTotal.WithLabelValues(r.Method, route, "unauthorized").Inc()
		if err := c.session.ClearAuth(ctx); err != nil {
			slog.Error("세션을 비우지 못했습니다", "error", err)
		}
		c.sink.Toast(feedback.LevelWarning, MsgLoginRequired)
		if c.nav.Location() != LoginRoute {
			c.nav.Redirect(LoginRoute)
		}
	case status >= http.StatusInternalServerError:
		requestsTotal.WithLabelValues(r.Method, route, "server_error").Inc()
		c.sink.Toast(feedback.LevelError, MsgServer)
	default:
		requestsTotal.WithLabelValues(r.Method, route, "client_error").Inc()
	}

	return apiErr
}

func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) > maxErrorBodyKB*1024 {
		body = body[:maxErrorBodyKB*1024]
	}
	return strings.TrimSpace(string(body))
}

// Get 은 GET 요청을 보내고 본문을 T 로 디코딩한다.
func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodGet, Path: path, Query: query})
}

func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPut, Path: path, Body: body})
}

func doJSON[T any](ctx context.Context, c *Client, r Request) (T, error) {
	var out T
	body, err := c.Do(ctx, r)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("gateway: decode %s %s: %w", r.Method, r.Path, err)
	}
	return out, nil
}
