package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/repo/sqlite"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/money"
)

// defaultLogFile — файл лога, если STORE_LOGGER_FILE не задан.
const defaultLogFile = "storefront.log"

var (
	flagJSON bool
	flagDB   string
)

// session — состояние одного запуска: конфигурация, логгер и корзина на локальной SQLite.
type session struct {
	ctx      context.Context
	cfg      config.Config
	log      ports.Logger
	kv       *sqlite.KVStore
	cart     *usecase.CartStore
	money    *money.Formatter
	checkout *usecase.Checkout
	closers  []func() error
}

var current *session

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Storefront: catalog browser, cart and WhatsApp checkout",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		current = s
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		return closeSession()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "cart database path (default: STORE_CART_DB_PATH)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
}

func openSession(ctx context.Context) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.Cart.DBPath = flagDB
	}

	logFile := cfg.Logger.File
	if logFile == "" {
		logFile = defaultLogFile
	}
	logg, syncLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, logger.WithFile(logFile))
	if err != nil {
		return nil, err
	}

	kv, err := sqlite.Open(cfg.Cart.DBPath)
	if err != nil {
		_ = syncLogger()
		return nil, fmt.Errorf("open cart storage: %w", err)
	}

	ctx = ctxmeta.WithSessionID(ctx, uuid.NewString())
	fm := money.NewFormatter(cfg.Checkout.Locale)

	return &session{
		ctx:   ctx,
		cfg:   cfg,
		log:   logg,
		kv:    kv,
		cart:  usecase.NewCartStore(ctx, kv, cfg.Cart.Key, logg),
		money: fm,
		checkout: usecase.NewCheckout(usecase.CheckoutConfig{
			Phone:            cfg.Checkout.Phone,
			ShippingBase:     cfg.Checkout.ShippingBase,
			FreeShippingFrom: cfg.Checkout.FreeShippingFrom,
		}, fm),
		closers: []func() error{syncLogger, kv.Close},
	}, nil
}

// closeSession — закрытие ресурсов в обратном порядке.
func closeSession() error {
	s := current
	current = nil
	if s == nil {
		return nil
	}
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *session) onClose(fn func() error) {
	s.closers = append(s.closers, fn)
}
