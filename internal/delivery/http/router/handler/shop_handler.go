package handler

import (
	"log/slog"

	"nearbasket/internal/delivery/http/response"
	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/repository"
	"nearbasket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for shop and roster handlers.
type ShopHandler struct {
	shops  repository.ShopRepository
	users  repository.UserRepository
	orders repository.OrderRepository
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(
	shops repository.ShopRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	logger *slog.Logger,
) *ShopHandler {
	return &ShopHandler{shops: shops, users: users, orders: orders, logger: logger}
}

// ownShop resolves the calling shopkeeper's shop.
func (h *ShopHandler) ownShop(c echo.Context) (*entity.Shop, error) {
	userID, err := callerID(c)
	if err != nil {
		return nil, err
	}

	shop, err := h.shops.FindByOwner(c.Request().Context(), userID)
	if err != nil {
		return nil, repoError(err)
	}

	return shop, nil
}

// MyShop returns the shopkeeper's own shop.
func (h *ShopHandler) MyShop(c echo.Context) error {
	shop, err := h.ownShop(c)
	if err != nil {
		return err
	}

	return response.OK(c, shop)
}

// UpdateMyShop updates the owned shop's public fields. Shop code and owner
// are immutable.
func (h *ShopHandler) UpdateMyShop(c echo.Context) error {
	shop, err := h.ownShop(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateShopInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}

	if input.Name != "" {
		shop.Name = input.Name
	}
	if input.Description != "" {
		shop.Description = input.Description
	}
	if input.Address != "" {
		shop.Address = input.Address
	}
	if input.Phone != "" {
		shop.Phone = input.Phone
	}
	if input.LogoURL != "" {
		shop.LogoURL = input.LogoURL
	}

	if err := h.shops.Update(c.Request().Context(), shop); err != nil {
		return repoError(err)
	}

	return response.OK(c, shop)
}

// Details looks a shop up by its public code.
func (h *ShopHandler) Details(c echo.Context) error {
	shop, err := h.shops.FindByCode(c.Request().Context(), c.Param("shopCode"))
	if err != nil {
		return repoError(err)
	}

	return response.OK(c, shop)
}

// Join puts the calling customer on the shop's roster. Joining twice is a
// conflict.
func (h *ShopHandler) Join(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	shop, err := h.shops.FindByCode(ctx, c.Param("shopCode"))
	if err != nil {
		return repoError(err)
	}

	if err := h.shops.AddMember(ctx, shop.ID, userID); err != nil {
		return repoError(err)
	}

	h.logger.Info("customer joined shop",
		slog.Any("customerID", userID),
		slog.String("shopCode", shop.ShopCode),
	)

	return response.OK(c, map[string]any{
		"message": "joined shop",
		"shop":    shop,
	})
}

// JoinedShops lists the shops the calling customer has joined.
func (h *ShopHandler) JoinedShops(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	shops, err := h.shops.ShopsOf(c.Request().Context(), userID)
	if err != nil {
		return repoError(err)
	}

	return response.OK(c, shops)
}

// AddCustomer puts a customer on the calling shopkeeper's roster by mobile
// number.
func (h *ShopHandler) AddCustomer(c echo.Context) error {
	shop, err := h.ownShop(c)
	if err != nil {
		return err
	}

	var input usecase.AddCustomerInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	customer, err := h.users.FindByMobileNumber(ctx, input.MobileNumber)
	if err != nil {
		return repoError(err)
	}
	if customer.Role != entity.RoleCustomer {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("only customers can be added to the roster"))
	}

	if err := h.shops.AddMember(ctx, shop.ID, customer.ID); err != nil {
		return repoError(err)
	}

	return response.OK(c, map[string]any{
		"message":  "customer added",
		"customer": customer,
	})
}

// Customers lists the calling shopkeeper's roster with per-customer order
// counts.
func (h *ShopHandler) Customers(c echo.Context) error {
	shop, err := h.ownShop(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	members, err := h.shops.Members(ctx, shop.ID)
	if err != nil {
		return repoError(err)
	}

	roster := make([]entity.ShopCustomer, 0, len(members))
	for _, member := range members {
		user, err := h.users.FindByID(ctx, member.CustomerID)
		if err != nil {
			return repoError(err)
		}
		count, err := h.orders.CountByCustomerAndShop(ctx, member.CustomerID, shop.ID)
		if err != nil {
			return errors.WithStack(err)
		}

		roster = append(roster, entity.ShopCustomer{
			User:        *user,
			TotalOrders: count,
			JoinedAt:    member.JoinedAt,
		})
	}

	return response.OK(c, roster)
}

// RemoveCustomer takes a customer off the calling shopkeeper's roster.
func (h *ShopHandler) RemoveCustomer(c echo.Context) error {
	shop, err := h.ownShop(c)
	if err != nil {
		return err
	}

	customerID, err := pathUUID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.shops.RemoveMember(c.Request().Context(), shop.ID, customerID); err != nil {
		return repoError(err)
	}

	return response.OK(c, map[string]string{"message": "customer removed"})
}
