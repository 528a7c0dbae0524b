package httpserver

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pricefinder/search-api/internal/infrastructure/config"
	"pricefinder/search-api/internal/interfaces/httpserver/middlewares"
	v1 "pricefinder/search-api/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	router   *gin.Engine
	config   *config.Config
	apiRoute *v1.APIRoute
}

func NewHTTPServer(
	cfg *config.Config,
	apiRoute *v1.APIRoute,
) *HTTPServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.MetricsRecorder())

	return &HTTPServer{
		router:   router,
		config:   cfg,
		apiRoute: apiRoute,
	}
}

func (s *HTTPServer) setupRoutes() {
	// Health check endpoints
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "search-api"})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready", "service": "search-api"})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register API routes
	group := s.router.Group("/v1")
	s.apiRoute.RegisterRouter(group)
}

func (s *HTTPServer) Run() error {
	s.setupRoutes()
	addr := fmt.Sprintf(":%s", s.config.HTTPPort)
	return s.router.Run(addr)
}
