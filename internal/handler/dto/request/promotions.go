package request

type RedeemPromoCodeRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

type WalletQuery struct {
	ClaimDaily bool `form:"claim_daily"`
}
