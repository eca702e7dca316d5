package handler

import (
	"log/slog"
	"strings"

	"nearbasket/internal/delivery/http/response"
	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/repository"
	"nearbasket/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	shops    repository.ShopRepository
	logger   *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	shops repository.ShopRepository,
	logger *slog.Logger,
) *OrderHandler {
	return &OrderHandler{orders: orders, products: products, shops: shops, logger: logger}
}

// Place creates an order against one shop. Stock is decremented for the whole
// batch or not at all, and each line freezes the product's name and price as
// they are right now.
func (h *OrderHandler) Place(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}

	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("delivery address is required"))
	}
	if len(input.Items) == 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("order must contain at least one line"))
	}

	ctx := c.Request().Context()
	if _, err := h.shops.FindByID(ctx, shopID); err != nil {
		return repoError(err)
	}

	// Snapshot the lines before committing stock, merging duplicate product
	// references into one line.
	quantities := make(map[uuid.UUID]int, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("quantity must be positive"))
		}
		quantities[item.ProductID] += item.Quantity
	}

	lines := make([]entity.OrderLine, 0, len(quantities))
	for productID, quantity := range quantities {
		product, err := h.products.FindByID(ctx, shopID, productID)
		if err != nil {
			return repoError(err)
		}
		lines = append(lines, entity.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    quantity,
		})
	}

	if err := h.products.DecrementStock(ctx, shopID, quantities); err != nil {
		return repoError(err)
	}

	order := &entity.Order{
		CustomerID:      userID,
		ShopID:          shopID,
		Items:           lines,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Instructions:    input.Instructions,
	}
	order.TotalAmount = order.ItemsTotal()

	if err := h.orders.Create(ctx, order); err != nil {
		return errors.WithStack(err)
	}

	h.logger.Info("order placed",
		slog.Any("orderID", order.ID),
		slog.Any("shopID", shopID),
		slog.Float64("total", order.TotalAmount),
	)

	return response.Created(c, order)
}

// MyOrders lists the calling customer's orders, newest first.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, orders)
}

// Details returns one order to its customer or to the owner of the shop it
// was placed with. Everyone else sees not-found.
func (h *OrderHandler) Details(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return repoError(err)
	}

	if order.CustomerID != userID {
		shop, err := h.shops.FindByID(ctx, order.ShopID)
		if err != nil || shop.OwnerID != userID {
			return errors.WithStack(domainerrors.ErrNotFound.WithDetails("order not found"))
		}
	}

	return response.OK(c, order)
}

// ShopOrders lists the orders the caller's shop has received, newest first.
func (h *OrderHandler) ShopOrders(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	shopID, err := pathUUID(c, "shopId")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	shop, err := h.shops.FindByID(ctx, shopID)
	if err != nil {
		return repoError(err)
	}
	if shop.OwnerID != userID {
		return errors.WithStack(domainerrors.ErrForbidden.WithDetails("not the owner of this shop"))
	}

	orders, err := h.orders.ListByShop(ctx, shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, orders)
}

// UpdateStatus moves an order along the workflow. The store is the authority:
// anything outside PENDING→ACCEPTED|REJECTED or ACCEPTED→DELIVERED is
// rejected and the order is left untouched.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	var input usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if !input.Status.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + input.Status.String()))
	}

	ctx := c.Request().Context()
	order, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return repoError(err)
	}

	shop, err := h.shops.FindByID(ctx, order.ShopID)
	if err != nil {
		return repoError(err)
	}
	if shop.OwnerID != userID {
		return errors.WithStack(domainerrors.ErrForbidden.WithDetails("not the owner of this shop"))
	}

	updated, err := h.orders.Transition(ctx, orderID, input.Status)
	if err != nil {
		return repoError(err)
	}

	h.logger.Info("order status changed",
		slog.Any("orderID", orderID),
		slog.String("status", updated.Status.String()),
	)

	return response.OK(c, updated)
}
