package server

import (
	"storefront/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開API
	h.Product.RegisterRoutes(e)
	h.Review.RegisterRoutes(e, cfg)
	h.Registry.RegisterRoutes(e, cfg)

	//認証
	h.Auth.RegisterRoutes(e, cfg)

	//ログイン必須
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Wishlist.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)

	//ADMINのみ
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminImport.RegisterRoutes(e, cfg)
}
