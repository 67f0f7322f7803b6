package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ValidateFile — валидирует файл товаров (JSON-объект, JSON-массив или JSONL).
// Валидные товары пишутся в ow и передаются в handle (если он задан).
func ValidateFile(
	ctx context.Context,
	validator ports.ProductValidator,
	filePath string,
	format InputFormat,
	ow io.Writer,
	handle Handler,
) (Result, error) {
	if format == FormatAuto {
		// по расширению; всё прочее считаем JSON
		if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
			format = FormatJSONL
		} else {
			format = FormatJSON
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return Result{}, fmt.Errorf("read file: %w", err)
		}
		return validateJSON(ctx, validator, raw, ow, handle)
	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, file, ow, handle)
	default:
		return Result{}, fmt.Errorf("unsupported format: %s", format)
	}
}

// validateJSON — одиночный объект или массив объектов; элементы массива проверяются независимо.
func validateJSON(ctx context.Context, validator ports.ProductValidator, raw []byte, ow io.Writer, handle Handler) (Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		product, err := ProductFromJSON(ctx, validator, trimmed)
		if err != nil {
			return Result{Invalid: 1}, err
		}
		if err := emit(ctx, ow, handle, product); err != nil {
			return Result{}, err
		}
		return Result{Valid: 1}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return Result{}, fmt.Errorf("%w: invalid json array: %v", ErrInvalidProduct, err)
	}
	var res Result
	for _, elem := range elems {
		product, err := ProductFromJSON(ctx, validator, elem)
		if err != nil {
			res.Invalid++
			continue
		}
		if err := emit(ctx, ow, handle, product); err != nil {
			return res, err
		}
		res.Valid++
	}
	return res, nil
}

func emit(ctx context.Context, ow io.Writer, handle Handler, product *domain.Product) error {
	canonical, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product %s: %w", product.ID, err)
	}
	if _, err := ow.Write(append(canonical, '\n')); err != nil {
		return fmt.Errorf("write product: %w", err)
	}
	if handle != nil {
		if err := handle(ctx, product); err != nil {
			return fmt.Errorf("handle product %s: %w", product.ID, err)
		}
	}
	return nil
}
