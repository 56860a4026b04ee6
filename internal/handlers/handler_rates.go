package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	"github.com/SscSPs/aud_rates_app/internal/dto"
	"github.com/SscSPs/aud_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	cacheControlNoStore = "no-store, must-revalidate"
	cacheControlHistory = "public, max-age=300"
)

// ratesHandler handles HTTP requests related to AUD-based rates.
type ratesHandler struct {
	latestRatesService portssvc.LatestRatesSvc
	historyService     portssvc.HistorySvc
	conversionService  portssvc.ConversionSvc
}

// newRatesHandler creates a new ratesHandler.
func newRatesHandler(services *portssvc.ServiceContainer) *ratesHandler {
	return &ratesHandler{
		latestRatesService: services.LatestRates,
		historyService:     services.History,
		conversionService:  services.Conversion,
	}
}

// RegisterRatesRoutes registers routes related to rates.
func RegisterRatesRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRatesHandler(services)

	rates := rg.Group("/rates")
	{
		rates.GET("/latest", h.getLatestRates)
		rates.GET("/history", h.getHistory)
		rates.GET("/convert", h.convertAmount)
	}
}

// getLatestRates godoc
// @Summary Get latest AUD rates
// @Description Returns the latest rates re-based to AUD, optionally filtered by targets
// @Tags rates
// @Produce  json
// @Param   targets query string false "Comma separated currency codes (default USD,EUR,JPY,GBP,CNY)"
// @Success 200 {object} dto.LatestRatesResponse
// @Failure 502 {object} dto.ErrorResponse "Upstream or configuration failure"
// @Router /rates/latest [get]
func (h *ratesHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var query dto.LatestRatesQuery
	_ = c.ShouldBindQuery(&query) // a single optional string cannot fail to bind

	targets := domain.SplitTargets(query.Targets)
	logger.Info("Received request for latest rates", slog.Any("targets", targets))

	latest, err := h.latestRatesService.LatestAudRates(c.Request.Context(), targets)
	if err != nil {
		logger.Error("Failed to get latest rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Cache-Control", cacheControlNoStore)
	c.JSON(http.StatusOK, dto.ToLatestRatesResponse(latest))
}

// getHistory godoc
// @Summary Get AUD rate history
// @Description Returns AUD-based rates for the default currencies over the last N UTC days
// @Tags rates
// @Produce  json
// @Param   days   query int    false "Number of days, clamped to [1, 60]" default(14)
// @Param   orient query string false "byCurrency (default) or raw" Enums(byCurrency, raw)
// @Success 200 {object} dto.HistorySeriesResponse "orient=byCurrency"
// @Success 200 {object} dto.HistoryTableResponse "any other orient"
// @Failure 502 {object} dto.ErrorResponse "History could not be built"
// @Router /rates/history [get]
func (h *ratesHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var query dto.HistoryQuery
	_ = c.ShouldBindQuery(&query)

	days := query.ClampedDays()
	logger = logger.With(slog.Int("days", days), slog.Bool("by_currency", query.ByCurrency()))
	logger.Info("Received request for rate history")

	table, err := h.historyService.GetHistoryByDateAUD(c.Request.Context(), days, domain.DefaultCurrencies)
	if err != nil {
		logger.Error("Failed to build history in service", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Cache-Control", cacheControlHistory)
	if query.ByCurrency() {
		series := h.historyService.ToByCurrency(table.Points, domain.DefaultCurrencies)
		c.JSON(http.StatusOK, dto.ToHistorySeriesResponse(table, series))
		return
	}
	c.JSON(http.StatusOK, dto.ToHistoryTableResponse(table))
}

// convertAmount godoc
// @Summary Convert an AUD amount
// @Description Converts an AUD amount into target currencies at the latest rates
// @Tags rates
// @Produce  json
// @Param   amount  query number true  "Non-negative AUD amount"
// @Param   targets query string false "Comma separated currency codes (default USD,EUR,JPY,GBP,CNY)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 502 {object} dto.ErrorResponse "Upstream or configuration failure"
// @Router /rates/convert [get]
func (h *ratesHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ConvertAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid amount: " + err.Error()})
		return
	}

	res, err := h.conversionService.ConvertAmount(c.Request.Context(), amount, domain.SplitTargets(query.Targets))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to convert amount in service", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.Header("Cache-Control", cacheControlNoStore)
	c.JSON(http.StatusOK, dto.ToConvertResponse(res))
}
