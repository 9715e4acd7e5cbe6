package query

import (
	"errors"
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

const (
	MsgProfileRequired  = "내 프로필을 먼저 등록해주세요."
	MsgEmployerApply    = "사장님은 지원할 수 없습니다."
	MsgNoticeClosed     = "지원할 수 없는 공고입니다."
	MsgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	MsgEmailTaken       = "이미 사용중인 이메일입니다."
	MsgSignupComplete   = "가입이 완료되었습니다."
	MsgApplied          = "신청 완료!"
	MsgCanceled         = "취소했어요."
	MsgProfileSaved     = "등록이 완료되었습니다."
)

var (
	ErrLoginRequired   = errors.New("로그인이 필요합니다.")
	ErrProfileRequired = errors.New(MsgProfileRequired)
	ErrEmployerApply   = errors.New(MsgEmployerApply)
	ErrNoticeClosed    = errors.New(MsgNoticeClosed)
	ErrNotCancelable   = errors.New("취소할 수 있는 지원이 없습니다.")
	ErrNotLoaded       = errors.New("공고를 먼저 불러와야 합니다.")
	ErrEmployerOnly    = errors.New("사장님만 이용할 수 있습니다.")
)

func alertModal(msg, action string) feedback.Modal {
	return feedback.Modal{Kind: feedback.ModalAlert, Message: msg, Action: action}
}

// clientErrorModal 은 gateway 가 토스트로 처리하지 않은 4xx 를 모달로 보여 준다.
func clientErrorModal(sink feedback.Sink, err error) {
	status := gateway.StatusOf(err)
	if status < http.StatusBadRequest || status == http.StatusUnauthorized || status >= http.StatusInternalServerError {
		return
	}
	if msg := gateway.MessageOf(err); msg != "" {
		sink.Modal(alertModal(msg, ""))
	}
}
