package server

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, session)
	h.Theme.RegisterRoutes(e, session)
	h.AdminProduct.RegisterRoutes(e, session)
}
