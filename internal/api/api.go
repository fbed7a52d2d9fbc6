package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reviewlens-backend/services/analytics"
	"reviewlens-backend/services/keywords"
	"reviewlens-backend/services/reports"
	"reviewlens-backend/services/reviews"
)

// Server holds the service layer behind the HTTP API.
type Server struct {
	reviews   *reviews.Service
	analytics *analytics.Service
	keywords  keywords.Service
	reports   *reports.Service
	registry  *reviews.Registry
}

type ServerParams struct {
	Reviews   *reviews.Service
	Analytics *analytics.Service
	Keywords  keywords.Service
	Reports   *reports.Service
	Registry  *reviews.Registry
}

// NewServer wires every route onto a fresh echo instance. The caller owns
// starting and shutting it down.
func NewServer(params ServerParams) *echo.Echo {
	s := &Server{
		reviews:   params.Reviews,
		analytics: params.Analytics,
		keywords:  params.Keywords,
		reports:   params.Reports,
		registry:  params.Registry,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)

	api.GET("/brands", s.handleListBrands)
	api.POST("/brands", s.handleCreateBrand)
	api.DELETE("/brands/:brand", s.handleDeleteBrand)
	api.GET("/brands/:brand/logo", s.handleBrandLogo)

	api.GET("/brands/:brand/reviews", s.handleListReviews)
	api.GET("/brands/:brand/analytics", s.handleAnalytics)
	api.GET("/brands/:brand/dashboard", s.handleDashboard)

	api.POST("/scrape", s.handleScrape)
	api.GET("/scrapes", s.handleRunningScrapes)
	api.POST("/brands/:brand/cancel", s.handleCancelScrape)

	api.GET("/keywords", s.handleGetGlobalKeywords)
	api.POST("/keywords", s.handleSetGlobalKeywords)
	api.GET("/brands/:brand/keywords", s.handleGetBrandKeywords)
	api.POST("/brands/:brand/keywords", s.handleSetBrandKeywords)
	api.POST("/update-reviews-keywords", s.handleRetag)

	api.POST("/generate-report", s.handleGenerateReport)

	return e
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
