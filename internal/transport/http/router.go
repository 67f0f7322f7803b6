package rest

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Handler — HTTP API витрины: чтение каталога и расчёт заказа.
// Корзина на сервере не хранится; checkout считает позиции, присланные клиентом.
type Handler struct {
	catalog  ports.CatalogReadService
	checkout *usecase.Checkout
	log      ports.Logger
	timeout  time.Duration
	pageSize int
}

func NewHandler(
	catalog ports.CatalogReadService,
	checkout *usecase.Checkout,
	log ports.Logger,
	timeout time.Duration,
	pageSize int,
) *Handler {
	return &Handler{
		catalog:  catalog,
		checkout: checkout,
		log:      log,
		timeout:  timeout,
		pageSize: pageSize,
	}
}

// NewRouter — serviceName != "" включает otelgin.
func NewRouter(h *Handler, staticDir, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", httpx.Timeout(h.timeout))
	api.GET("/categories", h.listCategories)
	api.GET("/home", h.getHome)
	api.GET("/catalog/:category", h.getCatalog)
	api.GET("/products/:id", h.getProduct)
	api.POST("/checkout", h.postCheckout)

	if staticDir != "" {
		r.Static("/static", staticDir)
		r.StaticFile("/", filepath.Join(staticDir, "index.html"))
	}
	return r
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
