// Package httpapi serves the packs REST API over echo.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/middleware"
	"github.com/mmynk/packs/internal/openapi"
	"github.com/mmynk/packs/internal/storage"
)

// Title and APIVersion name the API in the OpenAPI document.
const (
	Title      = "Packs REST API"
	APIVersion = "v1"
)

// Config holds the server's collaborators.
type Config struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Blocklist     auth.Blocklist
	// Metrics is optional; a private registry is created when nil.
	Metrics     *middleware.Metrics
	CORSOrigins []string
}

// Server routes HTTP requests to the resource handlers.
type Server struct {
	echo      *echo.Echo
	store     storage.Store
	users     auth.Authenticator
	jwt       *auth.JWTManager
	blocklist auth.Blocklist
	metrics   *middleware.Metrics

	openAPIJSON []byte
	openAPIYAML []byte
}

// New builds the echo instance with middleware and every route registered.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil || cfg.Authenticator == nil || cfg.JWT == nil || cfg.Blocklist == nil {
		return nil, errors.New("httpapi: store, authenticator, jwt manager and blocklist are required")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = middleware.NewMetrics()
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	doc := openapi.Build(openapi.Info{Title: Title, Version: APIVersion})
	docJSON, err := doc.JSON()
	if err != nil {
		return nil, err
	}
	docYAML, err := doc.YAML()
	if err != nil {
		return nil, err
	}

	s := &Server{
		echo:        echo.New(),
		store:       cfg.Store,
		users:       cfg.Authenticator,
		jwt:         cfg.JWT,
		blocklist:   cfg.Blocklist,
		metrics:     cfg.Metrics,
		openAPIJSON: docJSON,
		openAPIYAML: docYAML,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handleError

	e.Use(
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}),
		middleware.Tracing(),
		s.metrics.Middleware(),
		middleware.RequestLogger(),
		echomw.Recover(),
	)

	s.routes(middleware.NewTokenAuth(cfg.JWT, cfg.Blocklist))
	return s, nil
}

func (s *Server) routes(tokens *middleware.TokenAuth) {
	e := s.echo
	access := tokens.RequireAccess(false)
	fresh := tokens.RequireAccess(true)

	e.POST("/register", s.register)
	e.POST("/login", s.login)
	e.POST("/refresh", s.refresh, tokens.RequireRefresh())
	e.POST("/logout", s.logout, access)
	e.GET("/user/:user_id", s.getUser, access)

	e.GET("/pack", s.listPacks)
	e.POST("/pack", s.createPack, access)
	e.GET("/pack/:pack_id", s.getPack)
	e.PUT("/pack/:pack_id", s.putPack, access)
	e.DELETE("/pack/:pack_id", s.deletePack, fresh)
	e.GET("/pack/:pack_id/summary", s.packSummary)

	e.GET("/item", s.listItems)
	e.POST("/item", s.createItem, fresh)
	e.GET("/item/:item_id", s.getItem)
	e.PUT("/item/:item_id", s.putItem, access)
	e.DELETE("/item/:item_id", s.deleteItem, access)

	e.GET("/", s.index)
	e.GET("/openapi.json", s.openAPIDocJSON)
	e.GET("/openapi.yaml", s.openAPIDocYAML)
	e.GET("/swagger-ui", s.swaggerUI)
	e.GET("/healthz", s.health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Routes lists the registered routes in echo path syntax (/pack/:pack_id).
func (s *Server) Routes() []*echo.Route {
	return s.echo.Routes()
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(fmt.Sprintf("%s must be a positive integer.", name))
	}
	return id, nil
}
