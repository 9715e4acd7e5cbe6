// Package repository 는 백엔드 REST 엔드포인트를 타입이 있는 메서드로 감싼다.
// 모든 요청은 gateway 를 지나가고, 봉투는 여기서 명시적으로 벗긴다.
package repository

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type Repository struct {
	cfg     *config.Config
	gateway *gateway.Client
}

func NewRepository(cfg *config.Config, gw *gateway.Client) *Repository {
	return &Repository{
		cfg:     cfg,
		gateway: gw,
	}
}

// endpoint 는 /shops/{id}/notices 같은 경로를 만든다. 각 조각은 이스케이프한다.
func endpoint(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func pageQuery(offset, limit int) url.Values {
	q := url.Values{}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
