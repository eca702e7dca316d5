package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface. It keeps a small cache
// of the order records it has seen so a screen can show the latest known
// state; a failed call never touches the cache.
type orderService struct {
	client   *gateway.Client
	validate *validator.Validate
	rates    entity.CheckoutRates
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[uuid.UUID]entity.Order
}

// OrderServiceParams holds dependencies for the order service, injected by Fx.
type OrderServiceParams struct {
	fx.In

	Client *gateway.Client
	Rates  entity.CheckoutRates
	Logger *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		client:   params.Client,
		validate: newValidator(),
		rates:    params.Rates,
		logger:   params.Logger,
		cache:    make(map[uuid.UUID]entity.Order),
	}
}

// PlaceOrder validates the request locally and submits it once. Local
// validation failures never reach the wire; a network failure leaves the
// caller's cart intact for retry, but there is no idempotency key, so an
// ambiguous timeout must not be resubmitted blindly.
func (srv *orderService) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*entity.Order, error) {
	input.DeliveryAddress = strings.TrimSpace(input.DeliveryAddress)
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	order := new(entity.Order)
	if err := srv.client.Post(ctx, "/orders/shops/"+input.ShopID.String()+"/orders/", input, order); err != nil {
		return nil, errors.Wrap(err, "place order")
	}

	srv.remember(*order)
	srv.logger.Info("order placed",
		slog.Any("orderID", order.ID),
		slog.Any("shopID", order.ShopID),
		slog.Float64("total", order.TotalAmount),
	)

	return order, nil
}

// MyOrders lists the customer's orders, most recent ordering as returned by
// the gateway.
func (srv *orderService) MyOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := srv.client.Get(ctx, "/orders/my-orders/", &orders); err != nil {
		return nil, errors.Wrap(err, "list my orders")
	}

	srv.remember(orders...)

	return orders, nil
}

// OrderDetails fetches one order record.
func (srv *orderService) OrderDetails(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order := new(entity.Order)
	if err := srv.client.Get(ctx, "/orders/"+orderID.String()+"/", order); err != nil {
		return nil, errors.Wrap(err, "get order details")
	}

	srv.remember(*order)

	return order, nil
}

// ShopOrders lists the orders a shop has received.
func (srv *orderService) ShopOrders(ctx context.Context, shopID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	if err := srv.client.Get(ctx, "/orders/shops/"+shopID.String()+"/orders/list/", &orders); err != nil {
		return nil, errors.Wrap(err, "list shop orders")
	}

	srv.remember(orders...)

	return orders, nil
}

// UpdateStatus requests a workflow transition. The gateway is the authority:
// an out-of-workflow request comes back as ErrInvalidTransition and the
// cached record for the order stays unchanged.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown order status: " + status.String()))
	}

	order := new(entity.Order)
	input := usecase.UpdateOrderStatusInput{Status: status}
	if err := srv.client.Put(ctx, "/orders/"+orderID.String()+"/status/", input, order); err != nil {
		return nil, errors.Wrap(err, "update order status")
	}

	srv.remember(*order)

	return order, nil
}

// Quote summarizes the cart with the configured rates, rounded to cents for
// display. The gateway owns the total actually charged.
func (srv *orderService) Quote(cart *entity.Cart) entity.CheckoutSummary {
	summary := srv.rates.Summarize(cart)
	summary.Subtotal = entity.RoundCents(summary.Subtotal)
	summary.Tax = entity.RoundCents(summary.Tax)
	summary.GrandTotal = entity.RoundCents(summary.GrandTotal)

	return summary
}

// Cached returns the last seen record for an order, if any.
func (srv *orderService) Cached(orderID uuid.UUID) (*entity.Order, bool) {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	order, ok := srv.cache[orderID]
	if !ok {
		return nil, false
	}

	return &order, true
}

func (srv *orderService) remember(orders ...entity.Order) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for _, order := range orders {
		srv.cache[order.ID] = order
	}
}
