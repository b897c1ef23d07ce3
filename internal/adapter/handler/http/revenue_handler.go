package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	"github.com/wekeepgrowing/launch-revenue/internal/middleware/auth"
	"github.com/wekeepgrowing/launch-revenue/internal/usecase"
	pkgErrors "github.com/wekeepgrowing/launch-revenue/pkg/errors"
	"go.uber.org/zap"
)

// CompleteLinkRequest carries the code and state the payment platform redirected back with
type CompleteLinkRequest struct {
	Code  string `json:"code" validate:"required,max=512"`
	State string `json:"state" validate:"required,max=2048"`
}

// SetFilterRequest replaces the product filter. Null or blank clears it.
type SetFilterRequest struct {
	ProductFilter *string `json:"product_filter" validate:"omitempty,max=4096"`
}

// ConnectResponse is returned by the connect endpoint
type ConnectResponse struct {
	AuthorizeURL string `json:"authorize_url"`
}

// LinkResponse is the completed link. VerificationError is set when the account
// was saved but the first computation failed.
type LinkResponse struct {
	entity.LinkResult
	VerificationError string `json:"verification_error,omitempty"`
}

// FilterResponse is returned after a filter change
type FilterResponse struct {
	ProductFilter        *string    `json:"product_filter"`
	VerifiedRevenueCents *int64     `json:"verified_revenue_cents"`
	VerifiedAt           *time.Time `json:"verified_at"`
}

// CatalogResponse wraps the catalog entries
type CatalogResponse struct {
	Products []entity.CatalogEntry `json:"products"`
}

// RevenueHandler handles revenue verification HTTP requests
type RevenueHandler struct {
	logger         *zap.Logger
	linker         *usecase.AccountLinker
	revenueService *usecase.RevenueService
	catalogService *usecase.CatalogService
}

// NewRevenueHandler creates a new revenue handler instance
func NewRevenueHandler(
	logger *zap.Logger,
	linker *usecase.AccountLinker,
	revenueService *usecase.RevenueService,
	catalogService *usecase.CatalogService,
) *RevenueHandler {
	return &RevenueHandler{
		logger:         logger,
		linker:         linker,
		revenueService: revenueService,
		catalogService: catalogService,
	}
}

// Connect handles POST /api/v1/products/:id/revenue/connect
func (h *RevenueHandler) Connect(c echo.Context) error {
	productID := c.Param("id")

	url, err := h.linker.BeginLink(c.Request().Context(), productID, auth.GetUserID(c))
	if err != nil {
		return h.fail(err, "Failed to begin account link", zap.String("product_id", productID))
	}

	return c.JSON(http.StatusOK, ConnectResponse{AuthorizeURL: url})
}

// CompleteLink handles POST /api/v1/revenue/oauth/complete
func (h *RevenueHandler) CompleteLink(c echo.Context) error {
	var req CompleteLinkRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}

	result, err := h.linker.CompleteLink(c.Request().Context(), req.Code, req.State, auth.GetUserID(c))
	if err != nil && result == nil {
		return h.fail(err, "Failed to complete account link")
	}

	if err != nil {
		appErr := toAppError(err)
		pkgErrors.LogError(h.logger, appErr, "Account linked without verification",
			zap.String("product_id", result.ProductID))
		return c.JSON(http.StatusAccepted, LinkResponse{
			LinkResult:        *result,
			VerificationError: appErr.Message(),
		})
	}

	return c.JSON(http.StatusOK, LinkResponse{LinkResult: *result})
}

// Refresh handles POST /api/v1/products/:id/revenue/refresh
func (h *RevenueHandler) Refresh(c echo.Context) error {
	productID := c.Param("id")

	verification, err := h.revenueService.Refresh(c.Request().Context(), productID, auth.GetUserID(c))
	if err != nil {
		return h.fail(err, "Failed to refresh revenue", zap.String("product_id", productID))
	}

	return c.JSON(http.StatusOK, verification)
}

// SetFilter handles PUT /api/v1/products/:id/revenue/filter
func (h *RevenueHandler) SetFilter(c echo.Context) error {
	productID := c.Param("id")

	var req SetFilterRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	filterCSV := ""
	if req.ProductFilter != nil {
		filterCSV = *req.ProductFilter
	}

	verification, err := h.revenueService.SetFilter(c.Request().Context(), productID, auth.GetUserID(c), filterCSV)
	if err != nil {
		return h.fail(err, "Failed to set product filter", zap.String("product_id", productID))
	}

	resp := FilterResponse{ProductFilter: usecase.NormalizeProductFilter(filterCSV)}
	if verification != nil {
		resp.VerifiedRevenueCents = &verification.RevenueCents
		resp.VerifiedAt = &verification.VerifiedAt
	}

	return c.JSON(http.StatusOK, resp)
}

// Disconnect handles DELETE /api/v1/products/:id/revenue/connection
func (h *RevenueHandler) Disconnect(c echo.Context) error {
	productID := c.Param("id")

	if err := h.revenueService.Disconnect(c.Request().Context(), productID, auth.GetUserID(c)); err != nil {
		return h.fail(err, "Failed to disconnect account", zap.String("product_id", productID))
	}

	return c.NoContent(http.StatusNoContent)
}

// Catalog handles GET /api/v1/products/:id/revenue/catalog
func (h *RevenueHandler) Catalog(c echo.Context) error {
	productID := c.Param("id")

	entries, err := h.catalogService.ListCatalog(c.Request().Context(), productID, auth.GetUserID(c))
	if err != nil {
		return h.fail(err, "Failed to list catalog", zap.String("product_id", productID))
	}

	return c.JSON(http.StatusOK, CatalogResponse{Products: entries})
}

// GetStatus handles GET /api/v1/public/products/:id/revenue
func (h *RevenueHandler) GetStatus(c echo.Context) error {
	productID := c.Param("id")

	status, err := h.revenueService.GetStatus(c.Request().Context(), productID)
	if err != nil {
		return h.fail(err, "Failed to get revenue status", zap.String("product_id", productID))
	}

	return c.JSON(http.StatusOK, status)
}

func (h *RevenueHandler) bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		}).SetInternal(err)
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"error":   "Validation failed",
			"code":    "VALIDATION_FAILED",
			"details": err.Error(),
		}).SetInternal(err)
	}

	return nil
}

func (h *RevenueHandler) fail(err error, msg string, fields ...zap.Field) error {
	appErr := toAppError(err)
	pkgErrors.LogError(h.logger, appErr, msg, fields...)
	return pkgErrors.ToHTTPError(appErr)
}

// RegisterRoutes mounts the maker endpoints on protected and the read-only status on public
func (h *RevenueHandler) RegisterRoutes(public, protected *echo.Group) {
	public.GET("/public/products/:id/revenue", h.GetStatus)

	protected.POST("/revenue/oauth/complete", h.CompleteLink)

	revenue := protected.Group("/products/:id/revenue")
	revenue.POST("/connect", h.Connect)
	revenue.POST("/refresh", h.Refresh)
	revenue.PUT("/filter", h.SetFilter)
	revenue.DELETE("/connection", h.Disconnect)
	revenue.GET("/catalog", h.Catalog)
}
