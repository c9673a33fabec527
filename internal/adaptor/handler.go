package adaptor

import (
	"classifieds-market/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Item      *ItemHandler
	ItemImage *ItemImageHandler
	Address   *AddressHandler
	Purchase  *PurchaseHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Item:      NewItemHandler(service.Item, log),
		ItemImage: NewItemImageHandler(service.ItemImage, log),
		Address:   NewAddressHandler(service.Address, log),
		Purchase:  NewPurchaseHandler(service.Purchase, log),
	}
}
