package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	"github.com/SscSPs/aud_rates_app/internal/core/services"
	"github.com/SscSPs/aud_rates_app/internal/handlers"
	"github.com/SscSPs/aud_rates_app/internal/middleware"
	"github.com/SscSPs/aud_rates_app/internal/platform/config"
	"github.com/SscSPs/aud_rates_app/internal/utils/retry"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---
type MockLatestRatesService struct {
	mock.Mock
}

func (m *MockLatestRatesService) LatestAudRates(ctx context.Context, targets []string) (*domain.LatestRates, error) {
	args := m.Called(ctx, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LatestRates), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) GetHistoryByDateAUD(ctx context.Context, days int, targets []string) (*domain.HistoryTable, error) {
	args := m.Called(ctx, days, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryTable), args.Error(1)
}

func (m *MockHistoryService) ToByCurrency(points []domain.HistoryRow, targets []string) domain.SeriesMap {
	return services.ToByCurrency(points, targets)
}

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) ConvertAmount(ctx context.Context, amount decimal.Decimal, targets []string) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, targets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.LatestRatesSvc = (*MockLatestRatesService)(nil)
	_ portssvc.HistorySvc     = (*MockHistoryService)(nil)
	_ portssvc.ConversionSvc  = (*MockConversionService)(nil)
)

// --- Test Suite ---
type RatesHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockLatest     *MockLatestRatesService
	mockHistory    *MockHistoryService
	mockConversion *MockConversionService
}

func (suite *RatesHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockLatest = new(MockLatestRatesService)
	suite.mockHistory = new(MockHistoryService)
	suite.mockConversion = new(MockConversionService)

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(discardLogger()))
	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		LatestRates: suite.mockLatest,
		History:     suite.mockHistory,
		Conversion:  suite.mockConversion,
	})
}

func (suite *RatesHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RatesHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), "Failed to unmarshal response body")
	return body
}

func (suite *RatesHandlerTestSuite) TestHealth() {
	w := suite.get("/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *RatesHandlerTestSuite) TestLatest_PassesTargets() {
	suite.mockLatest.On("LatestAudRates", mock.Anything, []string{"usd", " jpy"}).Return(&domain.LatestRates{
		Base:      "AUD",
		Timestamp: 1234567890,
		Rates:     domain.RateMap{"USD": 0.65, "JPY": 100},
	}, nil).Once()

	w := suite.get("/rates/latest?targets=usd,%20jpy")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("no-store, must-revalidate", w.Header().Get("Cache-Control"))
	suite.JSONEq(`{"base":"AUD","timestamp":1234567890,"rates":{"USD":0.65,"JPY":100}}`, w.Body.String())
	suite.mockLatest.AssertExpectations(suite.T())
}

func (suite *RatesHandlerTestSuite) TestLatest_NoTargetsMeansDefaults() {
	suite.mockLatest.On("LatestAudRates", mock.Anything, []string(nil)).
		Return(&domain.LatestRates{Base: "AUD", Rates: domain.RateMap{}}, nil).Once()

	w := suite.get("/rates/latest?targets=")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLatest.AssertExpectations(suite.T())
}

func (suite *RatesHandlerTestSuite) TestLatest_NonFiniteRatesAreNull() {
	suite.mockLatest.On("LatestAudRates", mock.Anything, mock.Anything).Return(&domain.LatestRates{
		Base:  "AUD",
		Rates: domain.RateMap{"USD": math.NaN(), "EUR": math.Inf(1)},
	}, nil).Once()

	w := suite.get("/rates/latest")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"base":"AUD","timestamp":0,"rates":{"USD":null,"EUR":null}}`, w.Body.String())
}

func (suite *RatesHandlerTestSuite) TestLatest_UpstreamFailureIs502() {
	suite.mockLatest.On("LatestAudRates", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("failed to get latest rates in service: %w", &apperrors.UpstreamError{StatusCode: 401, Body: "invalid_app_id"})).Once()

	w := suite.get("/rates/latest")

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Contains(suite.decode(w)["error"], "OXR 401: invalid_app_id")
}

func (suite *RatesHandlerTestSuite) TestHistory_DefaultsToByCurrency() {
	table := &domain.HistoryTable{
		Base:      "AUD",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		Points: []domain.HistoryRow{
			{Date: "2024-01-01", Rates: map[string]float64{"USD": 0.7}},
			{Date: "2024-01-02", Error: "fetch_failed"},
		},
	}
	suite.mockHistory.On("GetHistoryByDateAUD", mock.Anything, 14, domain.DefaultCurrencies).Return(table, nil).Once()

	w := suite.get("/rates/history")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("public, max-age=300", w.Header().Get("Cache-Control"))
	suite.JSONEq(`{
		"base":"AUD","startDate":"2024-01-01","endDate":"2024-01-02",
		"series":{"USD":[{"date":"2024-01-01","value":0.7}],"EUR":[],"JPY":[],"GBP":[],"CNY":[]}
	}`, w.Body.String())
	suite.mockHistory.AssertExpectations(suite.T())
}

func (suite *RatesHandlerTestSuite) TestHistory_RawOrientation() {
	table := &domain.HistoryTable{
		Base:      "AUD",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-02",
		Points: []domain.HistoryRow{
			{Date: "2024-01-01", Error: "fetch_failed"},
			{Date: "2024-01-02", Rates: map[string]float64{"USD": 0.7}},
		},
	}
	suite.mockHistory.On("GetHistoryByDateAUD", mock.Anything, 60, mock.Anything).Return(table, nil).Once()

	w := suite.get("/rates/history?days=365&orient=raw")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{
		"base":"AUD","startDate":"2024-01-01","endDate":"2024-01-02",
		"points":[{"date":"2024-01-01","error":"fetch_failed"},{"date":"2024-01-02","USD":0.7}]
	}`, w.Body.String())
}

func (suite *RatesHandlerTestSuite) TestHistory_ClampsDays() {
	for query, days := range map[string]int{"days=-3": 1, "days=abc": 14, "days=7": 7, "days=0": 14, "days=2.5": 2} {
		suite.mockHistory.On("GetHistoryByDateAUD", mock.Anything, days, mock.Anything).
			Return(&domain.HistoryTable{Base: "AUD"}, nil).Once()

		w := suite.get("/rates/history?orient=raw&" + query)
		suite.Equal(http.StatusOK, w.Code, query)
	}
	suite.mockHistory.AssertExpectations(suite.T())
}

func (suite *RatesHandlerTestSuite) TestHistory_FailureIs502() {
	suite.mockHistory.On("GetHistoryByDateAUD", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("history fetch failed")).Once()

	w := suite.get("/rates/history")

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Equal("history fetch failed", suite.decode(w)["error"])
}

func (suite *RatesHandlerTestSuite) TestConvert_Success() {
	rate := 0.65
	converted := decimal.RequireFromString("6.5")
	suite.mockConversion.On("ConvertAmount", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(10))
	}), []string{"USD", "ABC"}).Return(&domain.ConversionResult{
		Base:      "AUD",
		Timestamp: 9,
		Amount:    decimal.NewFromInt(10),
		Targets:   []domain.ConvertedItem{{Code: "USD", Rate: &rate, Amount: &converted}, {Code: "ABC"}},
	}, nil).Once()

	w := suite.get("/rates/convert?amount=10&targets=USD,ABC")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{
		"base":"AUD","timestamp":9,"amount":10,
		"targets":[{"code":"USD","rate":0.65,"amount":6.5},{"code":"ABC","rate":null,"amount":null}]
	}`, w.Body.String())
}

func (suite *RatesHandlerTestSuite) TestConvert_BadAmount() {
	for _, url := range []string{"/rates/convert", "/rates/convert?amount=ten"} {
		w := suite.get(url)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
	suite.mockConversion.AssertNotCalled(suite.T(), "ConvertAmount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RatesHandlerTestSuite) TestConvert_ValidationAndUpstreamErrors() {
	suite.mockConversion.On("ConvertAmount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)).Once()
	w := suite.get("/rates/convert?amount=-1")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockConversion.On("ConvertAmount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &apperrors.UpstreamError{StatusCode: 500, Body: "down"}).Once()
	w = suite.get("/rates/convert?amount=1")
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *RatesHandlerTestSuite) TestSwaggerDocServed() {
	w := suite.get("/swagger/doc.json")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "/rates/history")
}

// --- Run Test Suite ---
func TestRatesHandler(t *testing.T) {
	suite.Run(t, new(RatesHandlerTestSuite))
}

// flakyProvider fails every date whose day of month is divisible by three.
type flakyProvider struct{}

func (flakyProvider) FetchLatest(context.Context) (*domain.RateSnapshot, error) {
	return nil, errors.New("not used")
}

func (flakyProvider) FetchHistorical(_ context.Context, date string) (*domain.RateSnapshot, error) {
	var day int
	if _, err := fmt.Sscanf(date[strings.LastIndex(date, "-")+1:], "%d", &day); err != nil {
		return nil, err
	}
	if day%3 == 0 {
		return nil, &apperrors.UpstreamError{StatusCode: 500, Body: "flaky"}
	}
	return &domain.RateSnapshot{Rates: map[string]float64{"AUD": 1.5, "USD": 1, "EUR": 0.9}}, nil
}

func TestHistoryEndpoint_OneRowPerRequestedDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	container := services.NewServiceContainer(flakyProvider{}, services.WithRetryPolicy(retry.NewPolicy(retry.Limit(3))))
	handlers.RegisterRoutes(router, &config.Config{IsProduction: true}, container)

	for days := 1; days <= 60; days++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/rates/history?orient=raw&days=%d", days), nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			StartDate string           `json:"startDate"`
			EndDate   string           `json:"endDate"`
			Points    []map[string]any `json:"points"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Points, days, "days=%d", days)
		assert.Equal(t, body.StartDate, body.Points[0]["date"])
		assert.Equal(t, body.EndDate, body.Points[days-1]["date"])
		for _, p := range body.Points {
			if _, failed := p["error"]; failed {
				assert.NotContains(t, p, "USD")
			}
		}
	}
}

func TestSwaggerOnlyOutsideProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := services.NewServiceContainer(flakyProvider{})

	for _, tc := range []struct {
		production bool
		expected   int
	}{
		{production: false, expected: http.StatusOK},
		{production: true, expected: http.StatusNotFound},
	} {
		router := gin.New()
		handlers.RegisterRoutes(router, &config.Config{IsProduction: tc.production}, container)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, tc.expected, w.Code, "production=%v", tc.production)
	}
}

func TestHandlerLogsCarryRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	mockLatest := new(MockLatestRatesService)
	mockLatest.On("LatestAudRates", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	router := gin.New()
	router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))))
	handlers.RegisterRoutes(router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{LatestRates: mockLatest})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates/latest", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	requestID := w.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, requestID)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Failed to get latest rates from service") {
			assert.Contains(t, line, `"request_id":"`+requestID+`"`)
			return
		}
	}
	t.Fatalf("handler error log not found in %q", buf.String())
}
