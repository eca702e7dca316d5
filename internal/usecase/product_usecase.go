package usecase

import (
	"context"
	"io"

	"nearbasket/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput defines the data required to add a product to a shop.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// UpdateProductInput updates an existing product. Stock is a pointer so zero
// can be set explicitly.
type UpdateProductInput struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// ProductUsecase defines the catalog operations.
type ProductUsecase interface {
	ListProducts(ctx context.Context, shopID uuid.UUID) ([]entity.Product, error)
	CreateProduct(ctx context.Context, shopID uuid.UUID, input CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, shopID, productID uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, shopID, productID uuid.UUID, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, shopID, productID uuid.UUID) error

	// UploadImage stores an image and returns the URL to put on a product or
	// shop record.
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
