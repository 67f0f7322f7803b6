package validate

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// Result — статистика валидации входного файла.
type Result struct {
	Valid   int
	Invalid int
}

func (r Result) String() string { return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid) }

// Handler — обработчик каждого валидного товара (например, публикация в Kafka).
type Handler func(ctx context.Context, product *domain.Product) error

// ValidateJSONLStream — читает JSONL, валидирует каждую строку, валидные пишет в writer
// каноническим JSON по одной строке. Пустые строки пропускаются, невалидные считаются.
func ValidateJSONLStream(
	ctx context.Context,
	validator ports.ProductValidator,
	ir io.Reader,
	ow io.Writer,
	handle Handler,
) (Result, error) {
	var res Result

	scanner := bufio.NewScanner(ir)
	// запас на большие строки (длинные описания)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		product, err := ProductFromJSON(ctx, validator, line)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := emit(ctx, ow, handle, product); err != nil {
			return res, err
		}
		res.Valid++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
