package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, "/", r.Location())

	r.Toast(LevelError, "네트워크 오류가 발생했습니다.")
	r.Modal(Modal{Kind: ModalAlert, Message: "비밀번호가 일치하지 않습니다."})
	r.Redirect("/login")

	peek := r.Peek()
	assert.Len(t, peek.Toasts, 1)
	assert.Equal(t, "/login", r.Location())

	s := r.Drain()
	assert.Len(t, s.Toasts, 1)
	assert.Equal(t, LevelError, s.Toasts[0].Level)
	assert.Len(t, s.Modals, 1)
	assert.Equal(t, []string{"/login"}, s.Redirects)
	assert.Equal(t, "/login", s.Location)

	empty := r.Drain()
	assert.Empty(t, empty.Toasts)
	assert.Empty(t, empty.Modals)
	assert.Empty(t, empty.Redirects)
	assert.Equal(t, "/login", empty.Location)

	r.Navigate("/notices")
	assert.Equal(t, "/notices", r.Location())
	assert.Empty(t, r.Peek().Redirects)
}
