package http

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"nearbasket/config"
	"nearbasket/internal/delivery/http/middleware"
	"nearbasket/internal/delivery/http/router"
	"nearbasket/internal/delivery/http/router/handler"
	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/errors"
	"nearbasket/internal/infra/auth"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/infra/persistence/memory"
	"nearbasket/internal/infra/qrcode"
	"nearbasket/internal/infra/session"
	"nearbasket/internal/infra/storage"
	"nearbasket/internal/usecase"
	"nearbasket/internal/usecase/impl"

	_ "gocloud.dev/blob/memblob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOTPCode = "1234"

// sdk bundles one signed-in client of the gateway, the way the app wires it.
type sdk struct {
	session *session.Session
	auth    usecase.AuthUsecase
	shops   usecase.ShopUsecase
	prods   usecase.ProductUsecase
	orders  usecase.OrderUsecase
}

func newGatewayServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		OTP: &config.OTPConfig{TTL: time.Minute, BcryptCost: 4, FixedCode: testOTPCode},
	}
	cfg.SecretKey.Access = "contract-test-access-secret"
	cfg.SecretKey.Refresh = "contract-test-refresh-secret"

	users := memory.NewUserStore()
	otps := memory.NewOTPStore()
	shops := memory.NewShopStore()
	products := memory.NewProductStore()
	orders := memory.NewOrderStore()

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptOTPHasher(cfg)

	params := router.RouterParams{
		UserHandler:    handler.NewUserHandler(users, otps, shops, tokenSvc, hasher, cfg, logger),
		ShopHandler:    handler.NewShopHandler(shops, users, orders, logger),
		ProductHandler: handler.NewProductHandler(products, shops, logger),
		OrderHandler:   handler.NewOrderHandler(orders, products, shops, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc),
	}

	e := NewEcho(logger, middleware.NewErrorMiddleware(logger), params)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server
}

func newSDK(t *testing.T, server *httptest.Server) *sdk {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Gateway: &config.GatewayConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		Storage: &config.StorageConfig{BucketURL: "mem://", PublicBaseURL: server.URL + "/images"},
	}

	sess := session.New(session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	client := gateway.New(cfg, sess, logger)

	uploader, closeBucket, err := storage.NewBlobUploader(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { closeBucket() })

	return &sdk{
		session: sess,
		auth:    impl.NewAuthService(impl.AuthServiceParams{Client: client, Session: sess, Logger: logger}),
		shops: impl.NewShopService(impl.ShopServiceParams{
			Client: client,
			QRCode: qrcode.NewQRCodeService(128, "L"),
			Logger: logger,
		}),
		prods: impl.NewProductService(impl.ProductServiceParams{
			Client:   client,
			Uploader: uploader,
			Logger:   logger,
		}),
		orders: impl.NewOrderService(impl.OrderServiceParams{Client: client, Logger: logger}),
	}
}

// signUp registers and signs in one account through the public endpoints.
func signUp(t *testing.T, s *sdk, name, mobile string, role entity.Role) *entity.User {
	t.Helper()
	ctx := context.Background()

	user, err := s.auth.Register(ctx, usecase.RegisterInput{
		Name:         name,
		MobileNumber: mobile,
		Role:         role,
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	require.NoError(t, s.auth.SendOtp(ctx, usecase.SendOtpInput{MobileNumber: mobile}))

	out, err := s.auth.VerifyOtp(ctx, usecase.VerifyOtpInput{MobileNumber: mobile, Code: testOTPCode})
	require.NoError(t, err)
	require.True(t, s.session.Authenticated())

	return out.User
}

func TestGateway_FullStorefrontFlow(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	keeper := newSDK(t, server)
	keeperUser := signUp(t, keeper, "Grace", "5550100", entity.RoleShopkeeper)
	require.NotNil(t, keeperUser.ShopID)
	assert.True(t, keeper.session.Can().ManageShop)

	shop, err := keeper.shops.MyShop(ctx)
	require.NoError(t, err)
	assert.Equal(t, keeperUser.ID, shop.OwnerID)
	assert.NotEmpty(t, shop.ShopCode)

	shop, err = keeper.shops.UpdateMyShop(ctx, usecase.UpdateShopInput{
		Name:    "Grace's Groceries",
		Address: "12 Market Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace's Groceries", shop.Name)

	milk, err := keeper.prods.CreateProduct(ctx, shop.ID, usecase.CreateProductInput{
		Name: "Milk", Price: 3.99, Stock: 5,
	})
	require.NoError(t, err)
	bread, err := keeper.prods.CreateProduct(ctx, shop.ID, usecase.CreateProductInput{
		Name: "Bread", Price: 2.49, Stock: 3,
	})
	require.NoError(t, err)

	customer := newSDK(t, server)
	signUp(t, customer, "Ada", "5550200", entity.RoleCustomer)
	assert.True(t, customer.session.Can().PlaceOrders)

	found, err := customer.shops.ShopDetails(ctx, shop.ShopCode)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, found.ID)

	joined, err := customer.shops.JoinShop(ctx, shop.ShopCode)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, joined.ID)

	// Joining the same shop twice is a conflict.
	_, err = customer.shops.JoinShop(ctx, shop.ShopCode)
	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode())

	myShops, err := customer.shops.JoinedShops(ctx)
	require.NoError(t, err)
	require.Len(t, myShops, 1)

	catalog, err := customer.prods.ListProducts(ctx, shop.ID)
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	// Build the cart the screens would build and place its lines.
	cart := entity.NewCart()
	require.NoError(t, cart.AddLine(milk, shop.ID, 2))
	require.NoError(t, cart.AddLine(bread, shop.ID, 1))
	assert.InDelta(t, 10.47, cart.Subtotal(), 1e-9)

	lines := make([]usecase.PlaceOrderLine, 0)
	for _, line := range cart.Lines() {
		lines = append(lines, usecase.PlaceOrderLine{ProductID: line.Product.ID, Quantity: line.Quantity})
	}

	order, err := customer.orders.PlaceOrder(ctx, usecase.PlaceOrderInput{
		ShopID:          shop.ID,
		DeliveryAddress: "34 Elm Street",
		Items:           lines,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.InDelta(t, 10.47, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)
	cart.Clear()

	// Placement decremented stock.
	catalog, err = customer.prods.ListProducts(ctx, shop.ID)
	require.NoError(t, err)
	for _, p := range catalog {
		switch p.ID {
		case milk.ID:
			assert.Equal(t, 3, p.Stock)
		case bread.ID:
			assert.Equal(t, 2, p.Stock)
		}
	}

	mine, err := customer.orders.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// Customers cannot transition orders.
	_, err = customer.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusAccepted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthRequired))

	received, err := keeper.orders.ShopOrders(ctx, shop.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)

	accepted, err := keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusAccepted, accepted.Status)

	delivered, err := keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, delivered.Status)

	// Terminal orders accept no further transitions, and the cached record
	// keeps its last good state.
	_, err = keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusRejected)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	cached, ok := keeper.orders.Cached(order.ID)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusDelivered, cached.Status)

	// The customer's view reflects the delivered state.
	details, err := customer.orders.OrderDetails(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, details.Status)
}

func TestGateway_PendingCannotSkipToDelivered(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	keeper := newSDK(t, server)
	signUp(t, keeper, "Grace", "5550100", entity.RoleShopkeeper)
	shop, err := keeper.shops.MyShop(ctx)
	require.NoError(t, err)
	milk, err := keeper.prods.CreateProduct(ctx, shop.ID, usecase.CreateProductInput{
		Name: "Milk", Price: 3.99, Stock: 5,
	})
	require.NoError(t, err)

	customer := newSDK(t, server)
	signUp(t, customer, "Ada", "5550200", entity.RoleCustomer)

	order, err := customer.orders.PlaceOrder(ctx, usecase.PlaceOrderInput{
		ShopID:          shop.ID,
		DeliveryAddress: "34 Elm Street",
		Items:           []usecase.PlaceOrderLine{{ProductID: milk.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusDelivered)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))

	// Rejection is final.
	rejected, err := keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRejected, rejected.Status)

	_, err = keeper.orders.UpdateStatus(ctx, order.ID, entity.OrderStatusAccepted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestGateway_OTPMismatchIssuesNoToken(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	s := newSDK(t, server)
	_, err := s.auth.Register(ctx, usecase.RegisterInput{
		Name:         "Ada",
		MobileNumber: "5550300",
		Role:         entity.RoleCustomer,
	})
	require.NoError(t, err)
	require.NoError(t, s.auth.SendOtp(ctx, usecase.SendOtpInput{MobileNumber: "5550300"}))

	_, err = s.auth.VerifyOtp(ctx, usecase.VerifyOtpInput{MobileNumber: "5550300", Code: "9999"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "The one-time password is incorrect", appErr.Message())

	assert.False(t, s.session.Authenticated())
	assert.Empty(t, s.session.AccessToken())

	// The pending code survives the failed attempt; the right code still works.
	out, err := s.auth.VerifyOtp(ctx, usecase.VerifyOtpInput{MobileNumber: "5550300", Code: testOTPCode})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestGateway_InsufficientStockRejectsWholeOrder(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	keeper := newSDK(t, server)
	signUp(t, keeper, "Grace", "5550100", entity.RoleShopkeeper)
	shop, err := keeper.shops.MyShop(ctx)
	require.NoError(t, err)
	milk, err := keeper.prods.CreateProduct(ctx, shop.ID, usecase.CreateProductInput{
		Name: "Milk", Price: 3.99, Stock: 2,
	})
	require.NoError(t, err)
	bread, err := keeper.prods.CreateProduct(ctx, shop.ID, usecase.CreateProductInput{
		Name: "Bread", Price: 2.49, Stock: 5,
	})
	require.NoError(t, err)

	customer := newSDK(t, server)
	signUp(t, customer, "Ada", "5550200", entity.RoleCustomer)

	_, err = customer.orders.PlaceOrder(ctx, usecase.PlaceOrderInput{
		ShopID:          shop.ID,
		DeliveryAddress: "34 Elm Street",
		Items: []usecase.PlaceOrderLine{
			{ProductID: bread.ID, Quantity: 1},
			{ProductID: milk.ID, Quantity: 3},
		},
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode())

	// Nothing was committed, not even the line that had stock.
	catalog, err := customer.prods.ListProducts(ctx, shop.ID)
	require.NoError(t, err)
	for _, p := range catalog {
		switch p.ID {
		case milk.ID:
			assert.Equal(t, 2, p.Stock)
		case bread.ID:
			assert.Equal(t, 5, p.Stock)
		}
	}

	mine, err := customer.orders.MyOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestGateway_UnauthenticatedRequestsRejected(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	s := newSDK(t, server)

	_, err := s.auth.GetProfile(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthRequired))

	_, err = s.orders.MyOrders(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthRequired))
}

func TestGateway_ProfileRoundTrip(t *testing.T) {
	server := newGatewayServer(t)
	ctx := context.Background()

	s := newSDK(t, server)
	signUp(t, s, "Ada", "5550200", entity.RoleCustomer)

	updated, err := s.auth.UpdateProfile(ctx, usecase.UpdateProfileInput{
		Name:    "Ada Lovelace",
		Address: "34 Elm Street",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)

	profile, err := s.auth.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "34 Elm Street", profile.Address)
	// Role and mobile number never change.
	assert.Equal(t, entity.RoleCustomer, profile.Role)
	assert.Equal(t, "5550200", profile.MobileNumber)
}
