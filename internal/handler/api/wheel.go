package api

import (
	"net/http"

	resdto "prize-wheel/internal/handler/dto/response"
	"prize-wheel/internal/handler/httperr"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WheelHandler struct {
	spins commands.SpinCommands
	q     queries.PromotionsQueries
}

func NewWheelHandler(spins commands.SpinCommands, q queries.PromotionsQueries) *WheelHandler {
	return &WheelHandler{spins: spins, q: q}
}

// @Summary Get wheel
// @Description Reward catalog with the chance of each entry and the spin cost
// @Tags wheel
// @Produce json
// @Success 200 {object} resdto.WheelResponse
// @Router /api/wheel [get]
func (h *WheelHandler) GetWheel(c *gin.Context) {
	view, err := h.q.GetWheel(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromWheelView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Spin the wheel
// @Description Debits the spin cost and draws a reward. The reward is revealed after the reveal delay.
// @Tags wheel
// @Produce json
// @Success 202 {object} resdto.SpinResponse
// @Failure 402 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/spins [post]
func (h *WheelHandler) Spin(c *gin.Context) {
	result, err := h.spins.AttemptSpin(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.FromSpinResult(result))
}

// @Summary Current spin
// @Description State of the latest spin, including the minted reward once revealed
// @Tags wheel
// @Produce json
// @Success 200 {object} resdto.SpinStatusResponse
// @Failure 404 {object} httperr.Response
// @Router /api/spins/current [get]
func (h *WheelHandler) GetCurrentSpin(c *gin.Context) {
	view, err := h.q.GetCurrentSpin(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpinView(view))
}
