package domain

import (
	"slices"
	"time"
)

type SortType string

const (
	SortDeadline  SortType = "마감임박순"
	SortPayDesc   SortType = "시급많은순"
	SortHourAsc   SortType = "시간적은순"
	SortShopAlpha SortType = "가나다순"
)

var SortTypes = []SortType{SortDeadline, SortPayDesc, SortHourAsc, SortShopAlpha}

type District string

var Districts = []District{
	"서울시 종로구", "서울시 중구", "서울시 용산구", "서울시 성동구", "서울시 광진구",
	"서울시 동대문구", "서울시 중랑구", "서울시 성북구", "서울시 강북구", "서울시 도봉구",
	"서울시 노원구", "서울시 은평구", "서울시 서대문구", "서울시 마포구", "서울시 양천구",
	"서울시 강서구", "서울시 구로구", "서울시 금천구", "서울시 영등포구", "서울시 동작구",
	"서울시 관악구", "서울시 서초구", "서울시 강남구", "서울시 송파구", "서울시 강동구",
}

func IsDistrict(s string) bool {
	return slices.Contains(Districts, District(s))
}

// FilterValues 는 상세 필터 UI 의 상태다. 저장하지 않는다.
type FilterValues struct {
	Locations []District `json:"locations"`
	StartDate *time.Time `json:"startDate,omitempty"`
	Amount    string     `json:"amount"`
}

func (f FilterValues) Empty() bool {
	return len(f.Locations) == 0 && f.StartDate == nil && f.Amount == ""
}
