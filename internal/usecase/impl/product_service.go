package impl

import (
	"context"
	"io"
	"log/slog"
	"path"

	"nearbasket/internal/domain/entity"
	"nearbasket/internal/domain/service"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	client   *gateway.Client
	uploader service.ImageUploader
	validate *validator.Validate
	logger   *slog.Logger
}

// ProductServiceParams holds dependencies for the product service, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Client   *gateway.Client
	Uploader service.ImageUploader
	Logger   *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		client:   params.Client,
		uploader: params.Uploader,
		validate: newValidator(),
		logger:   params.Logger,
	}
}

func productsPath(shopID uuid.UUID) string {
	return "/products/shops/" + shopID.String() + "/products/"
}

// ListProducts lists the catalog of one shop.
func (srv *productService) ListProducts(ctx context.Context, shopID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	if err := srv.client.Get(ctx, productsPath(shopID), &products); err != nil {
		return nil, errors.Wrap(err, "list products")
	}

	return products, nil
}

// CreateProduct adds a product to the shop's catalog.
func (srv *productService) CreateProduct(ctx context.Context, shopID uuid.UUID, input usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	product := new(entity.Product)
	if err := srv.client.Post(ctx, productsPath(shopID), input, product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	srv.logger.Info("product created", slog.String("name", input.Name), slog.Any("shopID", shopID))

	return product, nil
}

// GetProduct fetches one product record.
func (srv *productService) GetProduct(ctx context.Context, shopID, productID uuid.UUID) (*entity.Product, error) {
	product := new(entity.Product)
	if err := srv.client.Get(ctx, productsPath(shopID)+productID.String()+"/", product); err != nil {
		return nil, errors.Wrap(err, "get product")
	}

	return product, nil
}

// UpdateProduct updates the fields set on input.
func (srv *productService) UpdateProduct(ctx context.Context, shopID, productID uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	product := new(entity.Product)
	if err := srv.client.Put(ctx, productsPath(shopID)+productID.String()+"/", input, product); err != nil {
		return nil, errors.Wrap(err, "update product")
	}

	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (srv *productService) DeleteProduct(ctx context.Context, shopID, productID uuid.UUID) error {
	return errors.Wrap(
		srv.client.Delete(ctx, productsPath(shopID)+productID.String()+"/", nil),
		"delete product",
	)
}

// UploadImage stores an image under a collision-free key and returns the URL
// to put on a product or shop record.
func (srv *productService) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := uuid.New().String() + path.Ext(filename)

	url, err := srv.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", errors.Wrap(err, "upload image")
	}

	return url, nil
}
