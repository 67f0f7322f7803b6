package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/kafka"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/joho/godotenv"
)

// CLI: валидация файлов товаров и, по флагу -publish, отправка upsert-событий в топик каталога.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	publish := flag.Bool("publish", false, "publish valid products to the catalog topic (STORE_KAFKA_*)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, *inputPath, validate.InputFormat(*formatStr), *publish)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, inputPath string, format validate.InputFormat, publish bool) int {
	validator := validate.NewProductValidator()

	if inputPath == "" {
		inputPath = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	var handle validate.Handler
	if publish {
		_ = godotenv.Load(".env.local")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			return 1
		}

		logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd, logger.WithFile(cfg.Logger.File))
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			return 1
		}
		defer func() { _ = cleanup() }()

		metrics.MustRegister()

		producer, err := kafka.NewProducer(&kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			fmt.Fprintf(os.Stderr, "kafka: %v\n", err)
			return 1
		}
		defer func() { _ = producer.Close() }()

		publisher := usecase.NewProductPublisher(producer, validator, logg)
		handle = publisher.Upsert
	}

	summary, err := validate.ValidateFile(ctx, validator, inputPath, format, os.Stdout, handle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		return 1
	}
	if summary.Invalid > 0 {
		fmt.Fprintf(os.Stderr, "validation finished with rejects (%s)\n", summary)
		return 2
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
	return 0
}
