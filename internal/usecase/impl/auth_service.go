package impl

import (
	"context"
	"log/slog"

	"nearbasket/internal/domain/entity"
	"nearbasket/internal/infra/gateway"
	"nearbasket/internal/infra/session"
	"nearbasket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	client   *gateway.Client
	session  *session.Session
	validate *validator.Validate
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for the auth service, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Client  *gateway.Client
	Session *session.Session
	Logger  *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		client:   params.Client,
		session:  params.Session,
		validate: newValidator(),
		logger:   params.Logger,
	}
}

// Register creates a new account. The role is fixed here for good.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}
	if !input.Role.IsValid() {
		return nil, errors.WithStack(errInvalidRole(input.Role))
	}

	var out struct {
		Message string       `json:"message"`
		User    *entity.User `json:"user"`
	}
	if err := srv.client.PostPublic(ctx, "/users/register/", input, &out); err != nil {
		return nil, errors.Wrap(err, "register user")
	}

	return out.User, nil
}

// SendOtp requests a one-time password for the mobile number.
func (srv *authService) SendOtp(ctx context.Context, input usecase.SendOtpInput) error {
	if err := validateInput(srv.validate, input); err != nil {
		return err
	}

	srv.logger.Debug("requesting OTP", slog.String("mobileNumber", input.MobileNumber))

	return errors.Wrap(srv.client.PostPublic(ctx, "/users/send-otp/", input, nil), "send otp")
}

// VerifyOtp exchanges the code for tokens and establishes the session. A
// failed verification leaves the session and its durable cache untouched.
func (srv *authService) VerifyOtp(ctx context.Context, input usecase.VerifyOtpInput) (*usecase.LoginOutput, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	out := new(usecase.LoginOutput)
	if err := srv.client.PostPublic(ctx, "/users/verify-otp/", input, out); err != nil {
		return nil, errors.Wrap(err, "verify otp")
	}

	if err := srv.session.Establish(out.User, out.AccessToken, out.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "establish session")
	}

	srv.logger.Info("signed in", slog.String("role", out.User.Role.String()))

	return out, nil
}

// GetProfile fetches the current user record from the gateway.
func (srv *authService) GetProfile(ctx context.Context) (*entity.User, error) {
	user := new(entity.User)
	if err := srv.client.Get(ctx, "/users/me/", user); err != nil {
		return nil, errors.Wrap(err, "get profile")
	}

	return user, nil
}

// UpdateProfile updates the editable profile fields and refreshes the cached
// user record.
func (srv *authService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	if err := validateInput(srv.validate, input); err != nil {
		return nil, err
	}

	user := new(entity.User)
	if err := srv.client.Put(ctx, "/users/me/update/", input, user); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	if err := srv.session.UpdateUser(user); err != nil {
		return nil, errors.Wrap(err, "refresh cached user")
	}

	return user, nil
}

// Logout clears the client-held token and user cache. The design keeps no
// server-side session to revoke.
func (srv *authService) Logout(_ context.Context) error {
	return errors.Wrap(srv.session.Clear(), "logout")
}
