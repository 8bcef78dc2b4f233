package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
)

type Deps struct {
	Instances  *instancemw.Middleware
	Auth       *AuthHTTP
	Catalog    *CatalogHTTP
	Cart       *CartHTTP
	Navigation *NavigationHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1", d.Instances.Attach)

	auth := api.Group("/auth")
	auth.POST("/login", d.Auth.Login)
	auth.POST("/register", d.Auth.Register)
	auth.POST("/logout", d.Auth.LogOut)
	auth.GET("/me", d.Auth.Me)

	products := api.Group("/catalog/products")
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("", d.Catalog.GetProducts)
	products.GET("/:id", d.Catalog.GetProduct)

	cart := api.Group("/cart", d.Instances.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.ClearCart)
	cart.POST("/items", d.Cart.AddToCart)
	cart.PATCH("/items/:id", d.Cart.UpdateQuantity)
	cart.DELETE("/items/:id", d.Cart.RemoveFromCart)

	nav := api.Group("/navigation")
	nav.GET("", d.Navigation.GetState)
	nav.POST("/navigate", d.Navigation.Navigate)
	nav.POST("/replace", d.Navigation.Replace)
	nav.POST("/back", d.Navigation.Back)
	nav.POST("/tab", d.Navigation.SelectTab)
}
