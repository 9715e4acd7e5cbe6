package domain

// Link 는 백엔드가 모든 응답에 붙이는 HATEOAS 링크다.
type Link struct {
	Rel         string `json:"rel"`
	Description string `json:"description"`
	Method      string `json:"method"`
	Href        string `json:"href"`
}

// Item 은 백엔드의 단건 응답 봉투 {item, href, links} 이다.
type Item[T any] struct {
	Item  T      `json:"item"`
	Href  string `json:"href,omitempty"`
	Links []Link `json:"links,omitempty"`
}

func (i Item[T]) Unwrap() T {
	return i.Item
}

// List 는 백엔드의 목록 응답 봉투다.
type List[T any] struct {
	Offset  int       `json:"offset"`
	Limit   int       `json:"limit"`
	Count   int       `json:"count"`
	HasNext bool      `json:"hasNext"`
	Items   []Item[T] `json:"items"`
	Links   []Link    `json:"links,omitempty"`
}

func (l List[T]) Unwrap() []T {
	items := make([]T, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, it.Item)
	}
	return items
}
