package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkuznetsov/product_catalog/internal/handlers"
	authmw "github.com/mkuznetsov/product_catalog/internal/middleware/auth"
	"github.com/mkuznetsov/product_catalog/internal/validation"
)

type Deps struct {
	DB             *gorm.DB
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	SearchHandler  *handlers.SearchHandler
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = validation.New()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)

	guard := authmw.RequireToken(d.JWTSecret)
	products.POST("", d.ProductHandler.CreateProduct, guard)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, guard)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, guard)
}
