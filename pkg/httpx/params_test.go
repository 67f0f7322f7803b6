package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, http.NoBody)
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below_min", 0, 1, 10, 1},
		{"above_max", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"equal_min", 1, 1, 10, 1},
		{"equal_max", 10, 1, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rawQuery string
		want     int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=%203%20", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
		{"page=2.5", 1},
		{"page=999", 999},
	}
	for _, tt := range tests {
		t.Run(tt.rawQuery, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ParsePage(ctxWithQuery(tt.rawQuery)); got != tt.want {
				t.Fatalf("ParsePage(%q) = %d, want %d", tt.rawQuery, got, tt.want)
			}
		})
	}
}

func TestQueryOr(t *testing.T) {
	t.Parallel()

	c := ctxWithQuery("group=Rostro&subitem=")
	if got := httpx.QueryOr(c, "group", "All"); got != "Rostro" {
		t.Fatalf("want Rostro, got %q", got)
	}
	if got := httpx.QueryOr(c, "subitem", "All"); got != "All" {
		t.Fatalf("empty value must fall back, got %q", got)
	}
	if got := httpx.QueryOr(c, "missing", "All"); got != "All" {
		t.Fatalf("missing key must fall back, got %q", got)
	}
}
