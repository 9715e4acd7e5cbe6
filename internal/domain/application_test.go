package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToViewStatus(t *testing.T) {
	assert.Equal(t, StatusApproved, ToViewStatus(ApplicationAccepted))
	assert.Equal(t, StatusPending, ToViewStatus(ApplicationPending))
	assert.Equal(t, StatusRejected, ToViewStatus(ApplicationRejected))
	assert.Equal(t, StatusCanceled, ToViewStatus(ApplicationCanceled))
	assert.Equal(t, StatusNone, ToViewStatus(""))
}

func TestStateFromApplication(t *testing.T) {
	assert.Equal(t, ApplicationState{Status: StatusNone}, StateFromApplication(nil))

	state := StateFromApplication(&Item[Application]{Item: Application{ID: "app-1", Status: ApplicationAccepted}})
	assert.Equal(t, StatusApproved, state.Status)
	assert.Equal(t, "app-1", state.ApplicationID)
	assert.True(t, state.Cancelable())

	state = StateFromApplication(&Item[Application]{Item: Application{ID: "app-2", Status: ApplicationRejected}})
	assert.Equal(t, StatusRejected, state.Status)
	assert.False(t, state.Cancelable())
}

func TestAlertStatus(t *testing.T) {
	a := Alert{Application: &Item[Application]{Item: Application{Status: ApplicationPending}}}
	assert.Equal(t, ApplicationPending, a.Status())
	assert.False(t, a.Resolved())

	a.Result = ApplicationRejected
	assert.True(t, a.Resolved())
}

func TestElapsed(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "방금 전", Elapsed(now.Add(-10*time.Second), now))
	assert.Equal(t, "5분 전", Elapsed(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3시간 전", Elapsed(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2일 전", Elapsed(now.Add(-49*time.Hour), now))
}

func TestUserHelpers(t *testing.T) {
	u := User{ID: "u1", Type: UserTypeEmployee}
	assert.False(t, u.HasProfile())
	assert.Empty(t, u.ShopID())

	u.Name, u.Phone, u.Address = "김알바", "010-1234-5678", "서울시 마포구"
	assert.True(t, u.HasProfile())

	owner := User{Type: UserTypeEmployer, Shop: &Item[Shop]{Item: Shop{ID: "s1"}}}
	assert.True(t, owner.IsEmployer())
	assert.Equal(t, "s1", owner.ShopID())

	assert.True(t, NewAuthSession("t", &u).IsAuthenticated)
	assert.False(t, NewAuthSession("", &u).IsAuthenticated)
	assert.False(t, NewAuthSession("t", nil).IsAuthenticated)
}
