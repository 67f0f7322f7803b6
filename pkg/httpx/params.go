package httpx

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClampInt — ограничение значения v в диапазоне [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePage — номер страницы из query "page" (1-based). Мусор и значения < 1 дают 1.
// Верхняя граница неизвестна до выборки, её ограничивает движок каталога.
func ParsePage(c *gin.Context) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// QueryOr — значение query-параметра или def, если он пуст.
func QueryOr(c *gin.Context, key, def string) string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return v
	}
	return def
}
