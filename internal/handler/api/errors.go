package api

import (
	"errors"
	"net/http"

	"prize-wheel/internal/domain/wallet"
	resdto "prize-wheel/internal/handler/dto/response"
	"prize-wheel/internal/handler/httperr"
	"prize-wheel/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithDomainError maps usecase errors onto HTTP statuses.
func abortWithDomainError(c *gin.Context, err error) {
	var insufficient *wallet.InsufficientFundsError

	switch {
	case errors.As(err, &insufficient):
		httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Insufficient balance",
			resdto.InsufficientFundsDetail{Required: insufficient.Required, Available: insufficient.Available})
	case errs.Is(err, errs.ErrInvalidRedemption):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Promo code is invalid or expired", nil)
	case errs.Is(err, errs.ErrSpinInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "A spin is already in progress", nil)
	case errs.Is(err, errs.ErrSpinNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "No spin yet", nil)
	case errs.Is(err, errs.ErrGenerationCollision), errs.Is(err, errs.ErrPersistenceFailure):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Temporarily unavailable, try again", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
