package domain

import "time"

// ApplicationStatus 는 백엔드가 쓰는 지원 상태다.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
	ApplicationCanceled ApplicationStatus = "canceled"
)

// ViewStatus 는 화면에서 쓰는 지원 상태다. 백엔드의 accepted 는 approved 로 보인다.
type ViewStatus string

const (
	StatusNone     ViewStatus = "none"
	StatusPending  ViewStatus = "pending"
	StatusApproved ViewStatus = "approved"
	StatusRejected ViewStatus = "rejected"
	StatusCanceled ViewStatus = "canceled"
)

func ToViewStatus(s ApplicationStatus) ViewStatus {
	if s == ApplicationAccepted {
		return StatusApproved
	}
	if s == "" {
		return StatusNone
	}
	return ViewStatus(s)
}

type Application struct {
	ID        string            `json:"id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	User      *Item[User]       `json:"user,omitempty"`
	Shop      *Item[Shop]       `json:"shop,omitempty"`
	Notice    *Item[Notice]     `json:"notice,omitempty"`
}

type ApplicationState struct {
	Status        ViewStatus `json:"status"`
	ApplicationID string     `json:"applicationId,omitempty"`
}

// StateFromApplication 은 공고 상세에 포함된 "현재 사용자의 지원" 으로부터 상태를 만든다.
func StateFromApplication(app *Item[Application]) ApplicationState {
	if app == nil || app.Item.ID == "" {
		return ApplicationState{Status: StatusNone}
	}
	return ApplicationState{
		Status:        ToViewStatus(app.Item.Status),
		ApplicationID: app.Item.ID,
	}
}

func (s ApplicationState) Cancelable() bool {
	return s.ApplicationID != "" && (s.Status == StatusPending || s.Status == StatusApproved)
}

// ApplicationView 는 지원 내역 표의 한 줄이다.
type ApplicationView struct {
	ID        string     `json:"id"`
	ShopID    string     `json:"shopId"`
	ShopName  string     `json:"shopName"`
	NoticeID  string     `json:"noticeId"`
	StartsAt  time.Time  `json:"startsAt"`
	WorkHour  int        `json:"workhour"`
	HourlyPay int        `json:"hourlyPay"`
	Status    ViewStatus `json:"status"`
	// 사장님 화면에서 보는 지원자 정보
	ApplicantName  string `json:"applicantName,omitempty"`
	ApplicantPhone string `json:"applicantPhone,omitempty"`
	ApplicantBio   string `json:"applicantBio,omitempty"`
}

func NewApplicationView(a Application) ApplicationView {
	v := ApplicationView{
		ID:     a.ID,
		Status: ToViewStatus(a.Status),
	}
	if a.Shop != nil {
		v.ShopID = a.Shop.Item.ID
		v.ShopName = a.Shop.Item.Name
	}
	if a.Notice != nil {
		v.NoticeID = a.Notice.Item.ID
		v.StartsAt = a.Notice.Item.StartsAt
		v.WorkHour = a.Notice.Item.WorkHour
		v.HourlyPay = a.Notice.Item.HourlyPay
	}
	if a.User != nil {
		v.ApplicantName = a.User.Item.Name
		v.ApplicantPhone = a.User.Item.Phone
		v.ApplicantBio = a.User.Item.Bio
	}
	return v
}
