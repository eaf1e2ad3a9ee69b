package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"growmate/internal/auth"
	"growmate/internal/config"
	"growmate/internal/errors"
	"growmate/internal/handler"
	"growmate/internal/logger"
	"growmate/internal/metrics"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Garden        *handler.GardenHandler
	Task          *handler.TaskHandler
	Notification  *handler.NotificationHandler
	KnowledgeBase *handler.KnowledgeBaseHandler
	TrackingLog   *handler.TrackingLogHandler
	Template      *handler.TemplateHandler
	External      *handler.ExternalHandler
}

// Deps are the cross-cutting collaborators the middleware needs.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	JWT     *auth.JWTService
	Tokens  auth.TokenStoreInterface
	Metrics *metrics.Metrics
}

// Register wires routes and middleware.
func Register(e *echo.Echo, deps Deps, h Handlers) {
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(deps.Config.Security.CORSAllowedOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	authGroup := api.Group("/Auth")
	publicAuth := authGroup.Group("", authRateLimiter(deps.Config.Security))
	publicAuth.POST("/register", h.Auth.Register)
	publicAuth.POST("/login", h.Auth.Login)
	publicAuth.POST("/refresh", h.Auth.Refresh)
	publicAuth.POST("/logout", h.Auth.Logout)
	publicAuth.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	publicAuth.POST("/reset-password", h.Auth.ResetPassword)
	publicAuth.GET("/confirm-email", h.Auth.ConfirmEmail)

	api.GET("/GardenTemplate", h.Template.ListTemplates)
	api.GET("/GardenTemplate/:id", h.Template.GetTemplate)
	api.GET("/PlantKnowledgeBase", h.KnowledgeBase.ListEntries)
	api.GET("/PlantKnowledgeBase/:id", h.KnowledgeBase.GetEntry)
	api.GET("/catalog", h.External.BrowseCatalog)
	api.GET("/catalog/:id", h.External.GetCatalogPlant)

	// Secured routes (require JWT authentication)
	jwtMiddleware := JWTMiddleware(deps.JWT, deps.Tokens)
	authGroup.PUT("/update-profile", h.Auth.UpdateProfile, jwtMiddleware)

	secured := api.Group("", jwtMiddleware)

	secured.GET("/Users", h.User.ListUsers, handler.RequireAdmin)
	secured.POST("/Users", h.User.CreateUser, handler.RequireAdmin)
	secured.GET("/Users/:id", h.User.GetUser)
	secured.PUT("/Users/:id", h.User.UpdateUser)
	secured.DELETE("/Users/:id", h.User.DeleteUser)

	secured.GET("/Gardens", h.Garden.ListGardens)
	secured.POST("/Gardens", h.Garden.CreateGarden)
	secured.GET("/Gardens/by-user/:userId", h.Garden.ListByUser)
	secured.GET("/Gardens/:id", h.Garden.GetGarden)
	secured.PUT("/Gardens/:id", h.Garden.ReplaceGarden)
	secured.DELETE("/Gardens/:id", h.Garden.DeleteGarden)
	secured.POST("/Gardens/:gardenId/plants", h.Garden.AddPlant)
	secured.DELETE("/Gardens/:gardenId/plants/:plantId", h.Garden.RemovePlant)
	secured.PUT("/Gardens/:gardenId/plants/:plantId/water", h.Garden.WaterPlant)
	secured.POST("/Gardens/:gardenId/plants/:plantId/growth-records", h.Garden.AddGrowthRecord)

	secured.GET("/GardenTask", h.Task.ListTasks)
	secured.POST("/GardenTask", h.Task.CreateTask)
	secured.GET("/GardenTask/by-user/:userId", h.Task.ListByUser)
	secured.GET("/GardenTask/:id", h.Task.GetTask)
	secured.PUT("/GardenTask/:id", h.Task.UpdateTask)
	secured.DELETE("/GardenTask/:id", h.Task.DeleteTask)
	secured.POST("/GardenTask/:id/complete", h.Task.CompleteTask)

	secured.GET("/Notifications/:userId", h.Notification.ListByUser)
	secured.POST("/Notifications", h.Notification.CreateNotification)
	secured.PUT("/Notifications/:id", h.Notification.MarkRead)

	secured.POST("/PlantKnowledgeBase", h.KnowledgeBase.CreateEntry, handler.RequireAdmin)
	secured.PUT("/PlantKnowledgeBase/:id", h.KnowledgeBase.ReplaceEntry, handler.RequireAdmin)
	secured.DELETE("/PlantKnowledgeBase/:id", h.KnowledgeBase.DeleteEntry, handler.RequireAdmin)
	secured.POST("/Plants/add-to-garden/:userId/:knowledgeBaseId", h.KnowledgeBase.AddToGarden)

	secured.GET("/PlantTrackingLogs/by-plant/:plantId", h.TrackingLog.ListByPlant)
	secured.POST("/PlantTrackingLogs", h.TrackingLog.CreateLog)
	secured.GET("/PlantTrackingLogs/:id", h.TrackingLog.GetLog)
	secured.PUT("/PlantTrackingLogs/:id", h.TrackingLog.ReplaceLog)
	secured.DELETE("/PlantTrackingLogs/:id", h.TrackingLog.DeleteLog)

	secured.GET("/weather/:location", h.External.GetWeather)
}

// JWTMiddleware authenticates bearer access tokens and stores their claims
// under handler.ClaimsContextKey. Blacklisted tokens are rejected.
func JWTMiddleware(jwtService *auth.JWTService, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ClaimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if tokens != nil {
				if revoked, _ := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); revoked {
					return nil, errors.ErrInvalidToken
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

func authRateLimiter(cfg config.SecurityConfig) echo.MiddlewareFunc {
	if cfg.RateLimitRPS <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = int(cfg.RateLimitRPS) + 1
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.RateLimitRPS),
			Burst: burst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "rate limit exceeded",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.LogHTTPRequest(v.Method, v.URI, v.RequestID, v.Status, float64(v.Latency.Nanoseconds())/1e6, v.Error)
			return nil
		},
	})
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that also understands the "password" tag.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("password", auth.PasswordValidation)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
