// Package mailer 는 메일 큐의 메시지를 실제 메일로 만든다.
package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnsupportedType = errors.New("mailer: unsupported message type")

// Message 는 큐에서 받은 메시지다. Data 는 Type 에 따라 해석한다.
type Message struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type Composer struct {
	from      string
	templates *template.Template
	location  *time.Location
}

func NewComposer(from string) (*Composer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("mailer: parse templates: %w", err)
	}

	// 근무 일정은 한국 시간으로 보여 준다
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}

	return &Composer{from: from, templates: tmpl, location: loc}, nil
}

type applicationResultView struct {
	Name       string
	ShopName   string
	Accepted   bool
	ResultText string
	Schedule   string
}

// Render 는 메시지 본문과 제목을 만든다.
func (c *Composer) Render(m Message) (subject, body string, err error) {
	switch m.Type {
	case domain.MailTypeApplicationResult:
		var data domain.ApplicationResultMailData
		if err := json.Unmarshal(m.Data, &data); err != nil {
			return "", "", fmt.Errorf("mailer: decode %s: %w", m.Type, err)
		}

		view := applicationResultView{
			Name:       data.Name,
			ShopName:   data.ShopName,
			Accepted:   data.Result == domain.ApplicationAccepted,
			ResultText: "거절",
		}
		if view.Accepted {
			view.ResultText = "승인"
		}
		if !data.NoticeStart.IsZero() {
			view.Schedule = schedule(data.NoticeStart.In(c.location), data.WorkHour)
		}

		var buf bytes.Buffer
		if err := c.templates.ExecuteTemplate(&buf, "application_result.html", view); err != nil {
			return "", "", fmt.Errorf("mailer: render %s: %w", m.Type, err)
		}
		return fmt.Sprintf("The Julge - %s 지원이 %s되었어요", data.ShopName, view.ResultText), buf.String(), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, m.Type)
	}
}

// Compose 는 go-mail 메시지를 만든다.
func (c *Composer) Compose(m Message) (*mail.Msg, error) {
	subject, body, err := c.Render(m)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return nil, fmt.Errorf("mailer: from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("mailer: to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	return msg, nil
}

func schedule(start time.Time, hours int) string {
	end := start.Add(time.Duration(hours) * time.Hour)
	return fmt.Sprintf("%s %s~%s (%d시간)", start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04"), hours)
}
