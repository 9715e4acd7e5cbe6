package query

import (
	"context"
	"fmt"
	"io"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

const (
	MsgShopSaved   = "가게 정보가 저장되었습니다."
	MsgNoticeSaved = "공고가 저장되었습니다."
)

type ShopBackend interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
	CreateShop(ctx context.Context, in repository.ShopInput) (domain.Shop, error)
	UpdateShop(ctx context.Context, id string, in repository.ShopInput) (domain.Shop, error)
	CreateShopNotice(ctx context.Context, shopID string, in repository.NoticeInput) (domain.Notice, error)
	UpdateShopNotice(ctx context.Context, shopID, noticeID string, in repository.NoticeInput) (domain.Notice, error)
	UploadImage(ctx context.Context, name string, img io.Reader) (string, error)
}

// MyShop 은 사장님의 가게 등록, 수정과 공고 등록, 수정이다.
type MyShop struct {
	backend ShopBackend
	session SessionWriter
	sink    feedback.Sink
}

func NewMyShop(backend ShopBackend, session SessionWriter, sink feedback.Sink) *MyShop {
	return &MyShop{
		backend: backend,
		session: session,
		sink:    sink,
	}
}

// Register 는 가게를 등록하고, 세션의 사용자 정보를 다시 받아 가게를 연결한다.
func (m *MyShop) Register(ctx context.Context, in repository.ShopInput) (domain.Shop, error) {
	userID, err := m.employerID()
	if err != nil {
		return domain.Shop{}, err
	}

	shop, err := m.backend.CreateShop(ctx, in)
	if err != nil {
		clientErrorModal(m.sink, err)
		return domain.Shop{}, err
	}

	u, err := m.backend.GetUser(ctx, userID)
	if err != nil {
		return shop, fmt.Errorf("query: reload user after shop registration: %w", err)
	}
	if err := m.session.UpdateUser(ctx, u); err != nil {
		return shop, fmt.Errorf("query: update session user: %w", err)
	}

	m.sink.Modal(alertModal(MsgShopSaved, "/my-shop"))
	return shop, nil
}

func (m *MyShop) Update(ctx context.Context, in repository.ShopInput) (domain.Shop, error) {
	shopID, err := m.shopID()
	if err != nil {
		return domain.Shop{}, err
	}

	shop, err := m.backend.UpdateShop(ctx, shopID, in)
	if err != nil {
		clientErrorModal(m.sink, err)
		return domain.Shop{}, err
	}
	m.sink.Modal(alertModal(MsgShopSaved, "/my-shop"))
	return shop, nil
}

func (m *MyShop) PostNotice(ctx context.Context, in repository.NoticeInput) (domain.Notice, error) {
	shopID, err := m.shopID()
	if err != nil {
		return domain.Notice{}, err
	}

	n, err := m.backend.CreateShopNotice(ctx, shopID, in)
	if err != nil {
		clientErrorModal(m.sink, err)
		return domain.Notice{}, err
	}
	m.sink.Modal(alertModal(MsgNoticeSaved, "/shops/"+shopID+"/notices/"+n.ID))
	return n, nil
}

func (m *MyShop) EditNotice(ctx context.Context, noticeID string, in repository.NoticeInput) (domain.Notice, error) {
	shopID, err := m.shopID()
	if err != nil {
		return domain.Notice{}, err
	}

	n, err := m.backend.UpdateShopNotice(ctx, shopID, noticeID, in)
	if err != nil {
		clientErrorModal(m.sink, err)
		return domain.Notice{}, err
	}
	m.sink.Modal(alertModal(MsgNoticeSaved, "/shops/"+shopID+"/notices/"+n.ID))
	return n, nil
}

func (m *MyShop) UploadImage(ctx context.Context, name string, img io.Reader) (string, error) {
	if _, err := m.employerID(); err != nil {
		return "", err
	}
	return m.backend.UploadImage(ctx, name, img)
}

func (m *MyShop) employerID() (string, error) {
	s := m.session.Snapshot()
	if !s.IsAuthenticated {
		return "", ErrLoginRequired
	}
	if !s.User.IsEmployer() {
		return "", ErrEmployerOnly
	}
	return s.User.ID, nil
}

func (m *MyShop) shopID() (string, error) {
	if _, err := m.employerID(); err != nil {
		return "", err
	}
	id := m.session.Snapshot().User.ShopID()
	if id == "" {
		return "", repository.ErrNoShop
	}
	return id, nil
}
