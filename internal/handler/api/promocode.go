package api

import (
	"net/http"

	reqdto "prize-wheel/internal/handler/dto/request"
	resdto "prize-wheel/internal/handler/dto/response"
	"prize-wheel/internal/handler/httperr"
	"prize-wheel/internal/pkg/errs"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PromoCodeHandler struct {
	redemptions commands.RedemptionCommands
	q           queries.PromotionsQueries
}

func NewPromoCodeHandler(redemptions commands.RedemptionCommands, q queries.PromotionsQueries) *PromoCodeHandler {
	return &PromoCodeHandler{redemptions: redemptions, q: q}
}

// @Summary Check promo code
// @Description Validates a promo code without consuming it
// @Tags promo-codes
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} resdto.PromoCodeResponse
// @Router /api/promo-codes/{code} [get]
func (h *PromoCodeHandler) Check(c *gin.Context) {
	code := c.Param("code")

	view, err := h.q.LookupPromoCode(c.Request.Context(), code)
	if err != nil {
		if errs.Is(err, errs.ErrInvalidRedemption) {
			c.JSON(http.StatusOK, resdto.PromoCodeResponse{PromoCode: code, Valid: false})
			return
		}
		abortWithDomainError(c, err)
		return
	}

	res, err := resdto.FromPromoCodeView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Redeem promo code
// @Description Consumes a live promo code. A code can be redeemed once.
// @Tags promo-codes
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemPromoCodeRequest true "Redemption request"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/promo-codes/redeem [post]
func (h *PromoCodeHandler) Redeem(c *gin.Context) {
	var req reqdto.RedeemPromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.redemptions.Redeem(c.Request.Context(), req.Code)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRedemptionResult(result))
}
