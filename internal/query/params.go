package query

import (
	"errors"
	"strconv"
	"strings"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

var (
	ErrUnknownSort     = errors.New("지원하지 않는 정렬입니다.")
	ErrUnknownDistrict = errors.New("지원하지 않는 지역입니다.")
)

type sortParam struct {
	sort  string
	order string
}

var sortParams = map[domain.SortType]sortParam{
	domain.SortDeadline:  {sort: "time", order: "asc"},
	domain.SortPayDesc:   {sort: "pay", order: "desc"},
	domain.SortHourAsc:   {sort: "hour", order: "asc"},
	domain.SortShopAlpha: {sort: "shop", order: "asc"},
}

// SortQuery 는 화면의 정렬 이름을 백엔드의 sort, order 값으로 바꾼다.
func SortQuery(s domain.SortType) (sort, order string, err error) {
	p, ok := sortParams[s]
	if !ok {
		return "", "", ErrUnknownSort
	}
	return p.sort, p.order, nil
}

func validateFilter(f domain.FilterValues) error {
	for _, loc := range f.Locations {
		if !domain.IsDistrict(string(loc)) {
			return ErrUnknownDistrict
		}
	}
	return nil
}

// applyFilter 는 비어 있지 않은 필터 값만 조회 조건에 싣는다.
func applyFilter(q *repository.NoticeQuery, f domain.FilterValues) {
	for _, loc := range f.Locations {
		q.Addresses = append(q.Addresses, string(loc))
	}
	if f.StartDate != nil {
		start := *f.StartDate
		q.StartsAtGte = &start
	}
	if amount, ok := parseAmount(f.Amount); ok {
		q.HourlyPayGte = &amount
	}
}

// parseAmount 는 "15,000" 같은 입력도 받는다. 숫자가 아니면 조건에서 뺀다.
func parseAmount(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func offsetOf(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
