//go:build unit

package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"prize-wheel/internal/handler"
	"prize-wheel/internal/handler/api"
	resdto "prize-wheel/internal/handler/dto/response"
	"prize-wheel/tests/common/httptest"
	"prize-wheel/tests/common/promotest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterTestSuite struct {
	suite.Suite
	env    *promotest.Env
	router *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.env = promotest.New(s.T(),
		promotest.WithBalance(3),
		promotest.WithDraws(promotest.DiscountDraw),
		promotest.WithCodes(promotest.NewSequenceGenerator("PLASTAAA111")),
	)
	s.router = gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler.NewRouter(s.router, s.env.Config, logger, handler.Handlers{
		Wheel:     api.NewWheelHandler(s.env.Spins, s.env.Queries),
		Wallet:    api.NewWalletHandler(s.env.Bonuses, s.env.Queries),
		PromoCode: api.NewPromoCodeHandler(s.env.Redemptions, s.env.Queries),
	})
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) TestHealth() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil)

	var body map[string]string
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal("ok", body["status"])
}

func (s *RouterTestSuite) TestRequestIDIsEchoed() {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/health", nil,
		map[string]string{"X-Request-ID": "req-42"})
	s.Equal("req-42", rec.Header().Get("X-Request-ID"))

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))
}

func (s *RouterTestSuite) TestCORSPreflight() {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodOptions, "/api/spins", nil,
		map[string]string{
			"Origin":                        "http://localhost:3000",
			"Access-Control-Request-Method": http.MethodPost,
		})
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal("http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestSpinThroughReveal() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/spins", nil)
	var spin resdto.SpinResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusAccepted, &spin)
	s.Equal(0, spin.Balance)
	s.Equal(2, spin.RewardID)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/spins/current", nil)
	var status resdto.SpinStatusResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &status)
	s.Equal("spinning", status.State)
	s.Nil(status.Won)

	s.env.Clock.Advance(s.env.Config.Wheel.RevealDelay)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/spins/current", nil)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &status)
	s.Equal("resolved", status.State)
	s.Require().NotNil(status.Won)
	s.Equal("PLASTAAA111", status.Won.PromoCode)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/spins", nil)
	body := httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Insufficient balance")
	s.EqualValues(0, body.Detail["available"])

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/promo-codes/redeem",
		map[string]string{"code": "plastaaa111"})
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/rewards", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())
}

func (s *RouterTestSuite) TestUnknownRoute() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/nope", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
