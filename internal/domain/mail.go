package domain

import "time"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeApplicationResult = "application_result"

type ApplicationResultMailData struct {
	Name        string            `json:"name"`
	ShopName    string            `json:"shopName"`
	Result      ApplicationStatus `json:"result"`
	NoticeStart time.Time         `json:"noticeStart"`
	WorkHour    int               `json:"workhour"`
}
