package domain

type Shop struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Address1          string `json:"address1"`
	Address2          string `json:"address2"`
	Description       string `json:"description"`
	ImageURL          string `json:"imageUrl"`
	OriginalHourlyPay int    `json:"originalHourlyPay"`
}

var ShopCategories = []string{"한식", "중식", "일식", "양식", "분식", "카페", "편의점", "기타"}
