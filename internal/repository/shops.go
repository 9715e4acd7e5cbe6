package repository

import (
	"context"
	"net/http"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/gateway"
)

type ShopInput struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Address1          string `json:"address1"`
	Address2          string `json:"address2"`
	Description       string `json:"description"`
	ImageURL          string `json:"imageUrl"`
	OriginalHourlyPay int    `json:"originalHourlyPay"`
}

func (r *Repository) CreateShop(ctx context.Context, in ShopInput) (domain.Shop, error) {
	res, err := gateway.Post[domain.Item[domain.Shop]](ctx, r.gateway, "/shops", in)
	if err != nil {
		return domain.Shop{}, mapStatus(err, map[int]error{http.StatusConflict: ErrShopExists})
	}
	return res.Unwrap(), nil
}

func (r *Repository) GetShop(ctx context.Context, id string) (domain.Shop, error) {
	if id == "" {
		return domain.Shop{}, ErrNoShop
	}

	res, err := gateway.Get[domain.Item[domain.Shop]](ctx, r.gateway, endpoint("shops", id), nil)
	if err != nil {
		return domain.Shop{}, err
	}
	return res.Unwrap(), nil
}

func (r *Repository) UpdateShop(ctx context.Context, id string, in ShopInput) (domain.Shop, error) {
	if id == "" {
		return domain.Shop{}, ErrNoShop
	}

	res, err := gateway.Put[domain.Item[domain.Shop]](ctx, r.gateway, endpoint("shops", id), in)
	if err != nil {
		return domain.Shop{}, err
	}
	return res.Unwrap(), nil
}
