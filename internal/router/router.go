package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/auth"
	"storefront/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	cartHandler *handler.CartHandler,
	catalogHandler *handler.CatalogHandler,
	log logrus.FieldLogger,
) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Info("request")
			return nil
		},
	}))

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)
	e.GET("/jsoner", catalogHandler.ListCategories)
	e.GET("/categories/", catalogHandler.ListCategories)
	e.GET("/categories/user/:id", catalogHandler.CategoriesByUser)
	e.GET("/products", catalogHandler.ListProducts)
	e.GET("/products/:id", catalogHandler.GetProduct)
	e.GET("/products/category/:id", catalogHandler.ProductsByCategory)
	e.GET("/products/user/:id", catalogHandler.ProductsByUser)

	// Secured routes (require JWT authentication). The middleware is attached
	// per route so unknown paths still answer 404.
	secured := echojwt.WithConfig(echojwt.Config{
		SigningKey:    jwtService.SigningKey(),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(auth.Claims) },
		ErrorHandler:  handler.Unauthorized,
	})

	e.GET("/cart/", cartHandler.GetCart, secured)
	e.POST("/cart/", cartHandler.CreateCart, secured)
	e.POST("/jsonar", cartHandler.CreateCart, secured)
	e.GET("/cart/items", cartHandler.ListItems, secured)
	e.POST("/cart/items", cartHandler.AddItem, secured)
	e.PUT("/cart/items", cartHandler.UpdateItem, secured)
	e.DELETE("/cart/items", cartHandler.RemoveItem, secured)

	// Legacy item routes
	e.POST("/items", cartHandler.AddItem, secured)
	e.PUT("/items", cartHandler.UpdateItem, secured)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
