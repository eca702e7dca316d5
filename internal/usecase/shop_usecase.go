package usecase

import (
	"context"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateShopInput updates the owned shop's public fields.
type UpdateShopInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// AddCustomerInput adds a customer to the shop roster by mobile number.
type AddCustomerInput struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
}

// ShopUsecase defines shop operations for both roles: shopkeepers manage
// their own shop and roster, customers look up and join shops by code.
type ShopUsecase interface {
	MyShop(ctx context.Context) (*entity.Shop, error)
	UpdateMyShop(ctx context.Context, input UpdateShopInput) (*entity.Shop, error)
	ShopDetails(ctx context.Context, shopCode string) (*entity.Shop, error)
	JoinShop(ctx context.Context, shopCode string) (*entity.Shop, error)
	JoinedShops(ctx context.Context) ([]entity.Shop, error)
	AddCustomer(ctx context.Context, input AddCustomerInput) (*entity.User, error)
	Customers(ctx context.Context) ([]entity.ShopCustomer, error)
	RemoveCustomer(ctx context.Context, userID uuid.UUID) error

	// JoinQR renders the shop code as a scannable PNG for the counter.
	JoinQR(ctx context.Context, shopCode string) ([]byte, error)
}
