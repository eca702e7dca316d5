// Command nearbasket is a thin command-line front for the client SDK, used to
// poke a running gateway: register, sign in, browse a shop and place an
// order without the mobile app.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nearbasket/config"
	"nearbasket/internal/domain/entity"
	"nearbasket/internal/domain/service"
	"nearbasket/internal/infra/gateway"
	logs "nearbasket/internal/infra/log"
	"nearbasket/internal/infra/qrcode"
	"nearbasket/internal/infra/session"
	"nearbasket/internal/infra/storage"
	"nearbasket/internal/usecase"
	"nearbasket/internal/usecase/impl"

	"github.com/google/uuid"
	_ "gocloud.dev/blob/fileblob"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("nearbasket", flag.ExitOnError)
	mobile := flags.String("mobile", "", "mobile number for register/send-otp/verify-otp")
	name := flags.String("name", "", "display name for register")
	role := flags.String("role", "CUSTOMER", "role for register: CUSTOMER or SHOPKEEPER")
	code := flags.String("code", "", "one-time password for verify-otp, or shop code for shop commands")
	shopID := flags.String("shop", "", "shop id for product/order commands")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: nearbasket [flags] <command>")
		fmt.Fprintln(flags.Output(), "commands: register send-otp verify-otp me shop-details join-shop products my-orders logout")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()

		return fmt.Errorf("exactly one command expected")
	}
	command := flags.Arg(0)

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	storePath := ""
	if cfg.Session != nil {
		storePath = cfg.Session.StorePath
	}
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		storePath = filepath.Join(home, ".nearbasket", "session.json")
	}

	sess := session.New(session.NewFileStore(storePath))
	if err := sess.Init(); err != nil {
		return err
	}

	ctx := context.Background()

	client := gateway.New(cfg, sess, logger)
	authUC := impl.NewAuthService(impl.AuthServiceParams{Client: client, Session: sess, Logger: logger})
	shopUC := impl.NewShopService(impl.ShopServiceParams{
		Client: client,
		QRCode: newQRCodeService(cfg),
		Logger: logger,
	})
	rates, err := entity.ParseCheckoutRates(cfg.Checkout.DeliveryFee, cfg.Checkout.TaxRate)
	if err != nil {
		return err
	}
	orderUC := impl.NewOrderService(impl.OrderServiceParams{Client: client, Rates: rates, Logger: logger})

	var uploader service.ImageUploader
	if cfg.Storage != nil && cfg.Storage.BucketURL != "" {
		up, closeBucket, err := storage.NewBlobUploader(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeBucket()
		uploader = up
	}
	productUC := impl.NewProductService(impl.ProductServiceParams{
		Client:   client,
		Uploader: uploader,
		Logger:   logger,
	})

	switch command {
	case "register":
		user, err := authUC.Register(ctx, usecase.RegisterInput{
			Name:         *name,
			MobileNumber: *mobile,
			Role:         entity.Role(strings.ToUpper(*role)),
		})
		if err != nil {
			return err
		}

		return print(user)
	case "send-otp":
		return authUC.SendOtp(ctx, usecase.SendOtpInput{MobileNumber: *mobile})
	case "verify-otp":
		out, err := authUC.VerifyOtp(ctx, usecase.VerifyOtpInput{MobileNumber: *mobile, Code: *code})
		if err != nil {
			return err
		}

		return print(out.User)
	case "me":
		user, err := authUC.GetProfile(ctx)
		if err != nil {
			return err
		}

		return print(user)
	case "shop-details":
		shop, err := shopUC.ShopDetails(ctx, *code)
		if err != nil {
			return err
		}

		return print(shop)
	case "join-shop":
		shop, err := shopUC.JoinShop(ctx, *code)
		if err != nil {
			return err
		}

		return print(shop)
	case "products":
		id, err := uuid.Parse(*shopID)
		if err != nil {
			return fmt.Errorf("-shop must be a shop id: %w", err)
		}
		products, err := productUC.ListProducts(ctx, id)
		if err != nil {
			return err
		}

		return print(products)
	case "my-orders":
		orders, err := orderUC.MyOrders(ctx)
		if err != nil {
			return err
		}

		return print(usecase.GroupOrdersByStatus(orders))
	case "logout":
		return authUC.Logout(ctx)
	default:
		flags.Usage()

		return fmt.Errorf("unknown command %q", command)
	}
}

func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func print(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	return nil
}
