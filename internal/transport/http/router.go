package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/wicaksana/tokokasir/internal/handlers"
	"github.com/wicaksana/tokokasir/internal/service"
)

type Deps struct {
	DB                  *gorm.DB
	AuthHandler         *handlers.AuthHandler
	ProductHandler      *handlers.ProductHandler
	SearchHandler       *handlers.SearchHandler
	CheckoutHandler     *handlers.CheckoutHandler
	SalesHandler        *handlers.SalesHandler
	ProfileHandler      *handlers.ProfileHandler
	NotificationHandler *handlers.NotificationHandler
	TokenService        *service.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.GET("/search", d.SearchHandler.Search)

	auth := v1.Group("", d.TokenService.AutoRefreshMiddleware)

	auth.GET("/menu", d.ProfileHandler.Menu)
	auth.GET("/profile", d.ProfileHandler.GetProfile)
	auth.PATCH("/profile", d.ProfileHandler.UpdateProfile)
	auth.GET("/store", d.ProfileHandler.GetStore)

	auth.GET("/products", d.ProductHandler.GetProducts)
	auth.GET("/products/:id", d.ProductHandler.GetProduct)
	auth.GET("/stock/summary", d.ProductHandler.StockSummary)

	auth.GET("/cart", d.CheckoutHandler.GetCart)
	auth.POST("/cart", d.CheckoutHandler.AddItem)
	auth.PUT("/cart/:id", d.CheckoutHandler.UpdateItem)
	auth.DELETE("/cart/:id", d.CheckoutHandler.RemoveItem)
	auth.DELETE("/cart", d.CheckoutHandler.ClearCart)
	auth.POST("/cart/pay", d.CheckoutHandler.Pay)

	auth.GET("/dashboard", d.SalesHandler.Dashboard)

	auth.GET("/notifications", d.NotificationHandler.List)
	auth.POST("/notifications/:id/read", d.NotificationHandler.MarkRead)
	auth.POST("/notifications/read-all", d.NotificationHandler.MarkAllRead)

	pemilik := auth.Group("", service.PemilikOnly)

	pemilik.POST("/products", d.ProductHandler.CreateProduct)
	pemilik.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	pemilik.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	pemilik.POST("/products/:id/stock", d.ProductHandler.AdjustStock)

	pemilik.GET("/sales", d.SalesHandler.ListSales)
	pemilik.PATCH("/store", d.ProfileHandler.UpdateStore)
}
