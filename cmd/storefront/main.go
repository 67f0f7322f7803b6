// Command storefront — витрина в терминале: просмотр каталога, корзина и оформление заказа через wa.me.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// Коды выхода.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// userError — ошибка ввода покупателя (неизвестный товар, пустая корзина); остальное — системные.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return userError{err: fmt.Errorf(format, args...)}
}

func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string) int {
	defer func() { _ = closeSession() }()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

func exitCode(err error) int {
	var ue userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	return exitSysError
}
