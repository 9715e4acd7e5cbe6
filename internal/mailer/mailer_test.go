package mailer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(t *testing.T, data domain.ApplicationResultMailData) Message {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return Message{Type: domain.MailTypeApplicationResult, To: "worker@example.com", Data: raw}
}

func TestRender_Accepted(t *testing.T) {
	c, err := NewComposer("noreply@example.com")
	require.NoError(t, err)

	subject, body, err := c.Render(newMessage(t, domain.ApplicationResultMailData{
		Name:        "김알바",
		ShopName:    "도토리 식당",
		Result:      domain.ApplicationAccepted,
		NoticeStart: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		WorkHour:    4,
	}))
	require.NoError(t, err)

	assert.Equal(t, "The Julge - 도토리 식당 지원이 승인되었어요", subject)
	assert.Contains(t, body, "김알바님")
	assert.Contains(t, body, "2026-10-20 09:00~13:00 (4시간)")
}

func TestRender_RejectedWithoutSchedule(t *testing.T) {
	c, err := NewComposer("noreply@example.com")
	require.NoError(t, err)

	subject, body, err := c.Render(newMessage(t, domain.ApplicationResultMailData{
		ShopName: "도토리 식당",
		Result:   domain.ApplicationRejected,
	}))
	require.NoError(t, err)

	assert.Contains(t, subject, "거절")
	assert.Contains(t, body, "안녕하세요")
	assert.NotContains(t, body, "근무 일정")
}

func TestRender_UnsupportedType(t *testing.T) {
	c, err := NewComposer("noreply@example.com")
	require.NoError(t, err)

	_, _, err = c.Render(Message{Type: "create_user"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCompose_InvalidRecipient(t *testing.T) {
	c, err := NewComposer("noreply@example.com")
	require.NoError(t, err)

	m := newMessage(t, domain.ApplicationResultMailData{ShopName: "도토리 식당", Result: domain.ApplicationAccepted})
	m.To = "not an address"
	_, err = c.Compose(m)
	assert.Error(t, err)
}
