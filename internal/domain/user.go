package domain

type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeEmployer UserType = "employer"
)

func (t UserType) Valid() bool {
	return t == UserTypeEmployee || t == UserTypeEmployer
}

// User 는 로그인한 사용자의 스냅샷이다. 세션 갱신 때마다 통째로 교체된다.
type User struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Type    UserType    `json:"type"`
	Name    string      `json:"name,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Address string      `json:"address,omitempty"`
	Bio     string      `json:"bio,omitempty"`
	Shop    *Item[Shop] `json:"shop,omitempty"`
}

func (u User) IsEmployer() bool {
	return u.Type == UserTypeEmployer
}

// HasProfile 은 지원에 필요한 프로필(이름, 연락처, 선호 지역)이 등록되어 있는지 확인한다.
func (u User) HasProfile() bool {
	return u.Name != "" && u.Phone != "" && u.Address != ""
}

func (u User) ShopID() string {
	if u.Shop == nil {
		return ""
	}
	return u.Shop.Item.ID
}
