package domain

type RecentNotice struct {
	ID        string `json:"id"`
	ShopID    string `json:"shopId"`
	Timestamp int64  `json:"timestamp"` // 밀리초
}
