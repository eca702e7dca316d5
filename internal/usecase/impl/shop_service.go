package impl

import (
	"context"
	"log/slog"
	"strings"

	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/service"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	client   *gateway.Client
	qrcode   service.QRCodeService
	validate *validator.Validate
	logger   *slog.Logger
}

// ShopServiceParams holds dependencies for the shop service, injected by Fx.
type ShopServiceParams struct {
	fx.In

	Client *gateway.Client
	QRCode service.QRCodeService
	Logger *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		client:   params.Client,
		qrcode:   params.QRCode,
		validate: newValidator(),
		logger:   params.Logger,
	}
}

// MyShop returns the shopkeeper's own shop.
func (srv *shopService) MyShop(ctx context.Context) (*entity.Shop, error) {
	shop := new(entity.Shop)
	if err := srv.client.Get(ctx, "/shops/my-shop/", shop); err != nil {
		return nil, errors.Wrap(err, "get my shop")
	}

	return shop, nil
}

// UpdateMyShop updates the owned shop's public fields.
func (srv *shopService) UpdateMyShop(ctx context.Context, input usecase.UpdateShopInput) (*entity.Shop, error) {
	shop := new(entity.Shop)
	if err := srv.client.Put(ctx, "/shops/my-shop/update/", input, shop); err != nil {
		return nil, errors.Wrap(err, "update my shop")
	}

	return shop, nil
}

// ShopDetails looks a shop up by its public code.
func (srv *shopService) ShopDetails(ctx context.Context, shopCode string) (*entity.Shop, error) {
	if strings.TrimSpace(shopCode) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("shop code is required"))
	}

	shop := new(entity.Shop)
	if err := srv.client.Get(ctx, "/shops/details/"+shopCode+"/", shop); err != nil {
		return nil, errors.Wrap(err, "get shop details")
	}

	return shop, nil
}

// JoinShop adds the signed-in customer to the shop with the given code.
func (srv *shopService) JoinShop(ctx context.Context, shopCode string) (*entity.Shop, error) {
	if strings.TrimSpace(shopCode) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("shop code is required"))
	}

	var out struct {
		Message string       `json:"message"`
		Shop    *entity.Shop `json:"shop"`
	}
	if err := srv.client.Post(ctx, "/shops/join/"+shopCode+"/", nil, &out); err != nil {
		return nil, errors.Wrap(err, "join shop")
	}

	srv.logger.Info("joined shop", slog.String("shopCode", shopCode))

	return out.Shop, nil
}

// JoinedShops lists the shops the customer has joined.
func (srv *shopService) JoinedShops(ctx context.Context) ([]entity.Shop, error) {
	var shops []entity.Shop
	if err := srv.client.Get(ctx, "/shops/my-joined-shops/", &shops); err != nil {
		return nil, errors.Wrap(err, "list joined shops")
	}

	return shops, nil
}

// AddCustomer adds a customer to the shop roster by mobile number.
func (srv *shopService) AddCustomer(ctx context.Context, input usecase.AddCustomerInput) (*entity.User, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	var out struct {
		Message  string       `json:"message"`
		Customer *entity.User `json:"customer"`
	}
	if err := srv.client.Post(ctx, "/shops/add-customer/", input, &out); err != nil {
		return nil, errors.Wrap(err, "add customer")
	}

	return out.Customer, nil
}

// Customers lists the shop's roster.
func (srv *shopService) Customers(ctx context.Context) ([]entity.ShopCustomer, error) {
	var roster []entity.ShopCustomer
	if err := srv.client.Get(ctx, "/shops/customers/", &roster); err != nil {
		return nil, errors.Wrap(err, "list customers")
	}

	return roster, nil
}

// RemoveCustomer removes a customer from the shop roster.
func (srv *shopService) RemoveCustomer(ctx context.Context, userID uuid.UUID) error {
	return errors.Wrap(
		srv.client.Delete(ctx, "/shops/customers/"+userID.String()+"/remove/", nil),
		"remove customer",
	)
}

// JoinQR renders the shop code as a scannable PNG.
func (srv *shopService) JoinQR(_ context.Context, shopCode string) ([]byte, error) {
	if strings.TrimSpace(shopCode) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("shop code is required"))
	}

	png, err := srv.qrcode.GenerateJoinQR(shopCode)
	if err != nil {
		return nil, errors.Wrap(err, "generate join QR")
	}

	return png, nil
}
