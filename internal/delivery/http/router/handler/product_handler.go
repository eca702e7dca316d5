package handler

import (
	"log/slog"
	"net/http"

	"nearbasket/internal/delivery/http/response"
	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/repository"
	"nearbasket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	products repository.ProductRepository
	shops    repository.ShopRepository
	logger   *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(
	products repository.ProductRepository,
	shops repository.ShopRepository,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{products: products, shops: shops, logger: logger}
}

// requireOwnership fails unless the caller owns the shop in the path. Catalog
// writes are restricted to the owner; reads are open to any signed-in user.
func (h *ProductHandler) requireOwnership(c echo.Context, shopID uuid.UUID) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	shop, err := h.shops.FindByID(c.Request().Context(), shopID)
	if err != nil {
		return repoError(err)
	}
	if shop.OwnerID != userID {
		return errors.WithStack(domainerrors.ErrForbidden.WithDetails("not the owner of this shop"))
	}

	return nil
}

// List returns a shop's catalog.
func (h *ProductHandler) List(c echo.Context) error {
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}

	products, err := h.products.ListByShop(c.Request().Context(), shopID)
	if err != nil {
		return repoError(err)
	}

	return response.OK(c, products)
}

// Get returns one product record.
func (h *ProductHandler) Get(c echo.Context) error {
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.products.FindByID(c.Request().Context(), shopID, productID)
	if err != nil {
		return repoError(err)
	}

	return response.OK(c, product)
}

// Create adds a product to the caller's shop.
func (h *ProductHandler) Create(c echo.Context) error {
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}
	if err := h.requireOwnership(c, shopID); err != nil {
		return err
	}

	var input usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	product := &entity.Product{
		ShopID:      shopID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
	if err := h.products.Create(c.Request().Context(), product); err != nil {
		return repoError(err)
	}

	h.logger.Info("product created",
		slog.String("name", product.Name),
		slog.Any("shopID", shopID),
	)

	return response.Created(c, product)
}

// Update modifies the fields set on the request.
func (h *ProductHandler) Update(c echo.Context) error {
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}
	if err := h.requireOwnership(c, shopID); err != nil {
		return err
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	var input usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := h.products.FindByID(ctx, shopID, productID)
	if err != nil {
		return repoError(err)
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := h.products.Update(ctx, product); err != nil {
		return repoError(err)
	}

	return response.OK(c, product)
}

// Delete removes a product from the caller's catalog.
func (h *ProductHandler) Delete(c echo.Context) error {
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}
	if err := h.requireOwnership(c, shopID); err != nil {
		return err
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), shopID, productID); err != nil {
		return repoError(err)
	}

	return response.Message(c, http.StatusOK, "product deleted")
}
