package domain

type AuthSession struct {
	Token           string `json:"token"`
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

func NewAuthSession(token string, user *User) AuthSession {
	return AuthSession{
		Token:           token,
		User:            user,
		IsAuthenticated: token != "" && user != nil,
	}
}

func (s AuthSession) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
