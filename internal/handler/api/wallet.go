package api

import (
	"net/http"

	reqdto "prize-wheel/internal/handler/dto/request"
	resdto "prize-wheel/internal/handler/dto/response"
	"prize-wheel/internal/handler/httperr"
	"prize-wheel/internal/usecase/commands"
	"prize-wheel/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	bonuses commands.BonusCommands
	q       queries.PromotionsQueries
}

func NewWalletHandler(bonuses commands.BonusCommands, q queries.PromotionsQueries) *WalletHandler {
	return &WalletHandler{bonuses: bonuses, q: q}
}

// @Summary Get wallet
// @Description Balance and bonus status. claim_daily=true grants the daily bonus first, as on a page visit.
// @Tags wallet
// @Produce json
// @Param claim_daily query bool false "Claim the daily bonus before reading"
// @Success 200 {object} resdto.WalletResponse
// @Router /api/wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	var query reqdto.WalletQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	if query.ClaimDaily {
		if _, err := h.bonuses.ClaimDailyBonus(c.Request.Context()); err != nil {
			abortWithDomainError(c, err)
			return
		}
	}

	view, err := h.q.GetWallet(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromWalletView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Claim daily bonus
// @Description Credits the daily bonus once per calendar day. granted=false when already claimed today.
// @Tags wallet
// @Produce json
// @Success 200 {object} resdto.DailyBonusResponse
// @Failure 503 {object} httperr.Response
// @Router /api/bonuses/daily [post]
func (h *WalletHandler) ClaimDaily(c *gin.Context) {
	result, err := h.bonuses.ClaimDailyBonus(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDailyBonusResult(result))
}

// @Summary Start subscription bonus
// @Description Returns the channel link and credits the one-time subscription bonus after a short delay
// @Tags wallet
// @Produce json
// @Success 202 {object} resdto.SubscriptionResponse
// @Router /api/bonuses/subscription [post]
func (h *WalletHandler) StartSubscription(c *gin.Context) {
	result, err := h.bonuses.StartSubscription(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromSubscriptionResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusAccepted, res)
}

// @Summary List live rewards
// @Description Won rewards that have not expired or been redeemed
// @Tags wallet
// @Produce json
// @Success 200 {array} resdto.RewardResponse
// @Router /api/rewards [get]
func (h *WalletHandler) ListRewards(c *gin.Context) {
	views, err := h.q.ListLiveRewards(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromRewardViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
