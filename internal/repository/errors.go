package repository

import (
	"errors"
	"fmt"

	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

var (
	ErrPasswordMismatch = errors.New("비밀번호가 일치하지 않습니다.")
	ErrLoginInvalid     = errors.New("이메일 또는 비밀번호 형식이 올바르지 않습니다.")
	ErrEmailTaken       = errors.New("이미 사용중인 이메일입니다.")
	ErrNoticeNotFound   = errors.New("존재하지 않는 공고입니다.")
	ErrShopExists       = errors.New("이미 가게를 등록했습니다.")
	ErrNoUser           = errors.New("사용자 정보가 없습니다.")
	ErrNoShop           = errors.New("가게 정보가 없습니다.")
	ErrInvalidDecision  = errors.New("승인 또는 거절만 할 수 있습니다.")
)

// mapStatus 는 백엔드 상태 코드를 호출별 오류로 바꾼다. 해당하지 않으면 원래 오류를 그대로 돌려준다.
func mapStatus(err error, mapping map[int]error) error {
	if err == nil {
		return nil
	}
	if target, ok := mapping[gateway.StatusOf(err)]; ok {
		return fmt.Errorf("%w: %w", target, err)
	}
	return err
}
