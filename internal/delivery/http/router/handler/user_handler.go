package handler

import (
	"log/slog"
	"net/http"
	"time"

	"nearbasket/config"
	"nearbasket/internal/delivery/http/response"
	"nearbasket/internal/domain/entity"
	domainerrors "nearbasket/internal/domain/errors"
	"nearbasket/internal/domain/repository"
	"nearbasket/internal/domain/service"
	"nearbasket/internal/usecase"
	"nearbasket/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultOTPTTL = 5 * time.Minute

// UserHandler holds dependencies for account and authentication handlers.
type UserHandler struct {
	users    repository.UserRepository
	otps     repository.OTPRepository
	shops    repository.ShopRepository
	tokenSvc service.TokenService
	hasher   service.OTPHasher
	cfg      *config.Config
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(
	users repository.UserRepository,
	otps repository.OTPRepository,
	shops repository.ShopRepository,
	tokenSvc service.TokenService,
	hasher service.OTPHasher,
	cfg *config.Config,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		users:    users,
		otps:     otps,
		shops:    shops,
		tokenSvc: tokenSvc,
		hasher:   hasher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates an account. The role is fixed here; registering as a
// shopkeeper also creates the shop with a fresh public code.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid registration input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	if !input.Role.IsValid() {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown role: " + input.Role.String()))
	}

	user := &entity.User{
		MobileNumber: input.MobileNumber,
		Name:         input.Name,
		Email:        input.Email,
		Role:         input.Role,
	}
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		return repoError(err)
	}

	if input.Role == entity.RoleShopkeeper {
		shopCode, err := util.NewShopCode()
		if err != nil {
			return errors.WithStack(err)
		}

		shop := &entity.Shop{
			ShopCode: shopCode,
			Name:     input.Name + "'s Shop",
			OwnerID:  user.ID,
		}
		if err := h.shops.Create(c.Request().Context(), shop); err != nil {
			return repoError(err)
		}

		user.ShopID = &shop.ID
		if err := h.users.Update(c.Request().Context(), user); err != nil {
			return repoError(err)
		}
	}

	h.logger.Info("account registered",
		slog.String("mobileNumber", user.MobileNumber),
		slog.String("role", user.Role.String()),
	)

	return response.Created(c, map[string]any{
		"message": "account registered",
		"user":    user,
	})
}

// SendOtp issues a one-time password for a registered mobile number. The code
// is stored hashed; in development a fixed code can be configured instead of
// a random one.
func (h *UserHandler) SendOtp(c echo.Context) error {
	var input usecase.SendOtpInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if _, err := h.users.FindByMobileNumber(c.Request().Context(), input.MobileNumber); err != nil {
		return repoError(err)
	}

	code := ""
	if h.cfg.OTP != nil {
		code = h.cfg.OTP.FixedCode
	}
	if code == "" {
		generated, err := util.NumericCode(4)
		if err != nil {
			return errors.WithStack(err)
		}
		code = generated
	}

	hash, err := h.hasher.Hash(code)
	if err != nil {
		return errors.WithStack(err)
	}

	ttl := defaultOTPTTL
	if h.cfg.OTP != nil && h.cfg.OTP.TTL > 0 {
		ttl = h.cfg.OTP.TTL
	}
	record := repository.OTPRecord{
		MobileNumber: input.MobileNumber,
		CodeHash:     hash,
		ExpiresAt:    time.Now().UTC().Add(ttl),
	}
	if err := h.otps.Save(c.Request().Context(), record); err != nil {
		return errors.WithStack(err)
	}

	// There is no SMS gateway here; the log line is the delivery channel.
	h.logger.Info("otp issued",
		slog.String("mobileNumber", input.MobileNumber),
		slog.String("code", code),
	)

	return response.Message(c, http.StatusOK, "otp sent")
}

// VerifyOtp exchanges a valid code for tokens. A wrong code leaves the pending
// record in place for another try; an expired one is consumed.
func (h *UserHandler) VerifyOtp(c echo.Context) error {
	var input usecase.VerifyOtpInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	record, err := h.otps.Find(ctx, input.MobileNumber)
	if err != nil {
		return errors.WithStack(domainerrors.ErrInvalidOTP)
	}

	if time.Now().UTC().After(record.ExpiresAt) {
		_ = h.otps.Delete(ctx, input.MobileNumber)

		return errors.WithStack(domainerrors.ErrOTPExpired)
	}

	if !h.hasher.Check(input.Code, record.CodeHash) {
		return errors.WithStack(domainerrors.ErrInvalidOTP)
	}

	if err := h.otps.Delete(ctx, input.MobileNumber); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.users.FindByMobileNumber(ctx, input.MobileNumber)
	if err != nil {
		return repoError(err)
	}

	access, refresh, err := h.tokenSvc.GenerateTokens(user.ID, []string{user.Role.String()})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, usecase.LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

// Me returns the signed-in user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByID(c.Request().Context(), userID)
	if err != nil {
		return repoError(err)
	}

	return response.OK(c, user)
}

// UpdateMe updates the signed-in user's editable fields. Role and mobile
// number are immutable.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid input"))
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return repoError(err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Address != "" {
		user.Address = input.Address
	}

	if err := h.users.Update(ctx, user); err != nil {
		return repoError(err)
	}

	return response.OK(c, user)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}
