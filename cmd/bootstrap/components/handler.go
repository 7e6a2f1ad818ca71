package components

import (
	"prize-wheel/internal/handler"
	"prize-wheel/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWheelHandler,
		api.NewWalletHandler,
		api.NewPromoCodeHandler,
		func(w *api.WheelHandler, wl *api.WalletHandler, p *api.PromoCodeHandler) handler.Handlers {
			return handler.Handlers{Wheel: w, Wallet: wl, PromoCode: p}
		},
	),
	fx.Invoke(handler.NewRouter),
)
