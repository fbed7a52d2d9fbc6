package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createBrandRequest struct {
	ID          string `json:"id"`
	SourceUrl   string `json:"source_url"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleListBrands(c echo.Context) error {
	brands, err := s.reviews.ListBrands(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, brands)
}

func (s *Server) handleCreateBrand(c echo.Context) error {
	var req createBrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	err := s.reviews.SetBrandSource(c.Request().Context(), req.ID, req.SourceUrl, req.DisplayName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	brand, err := s.reviews.GetBrand(c.Request().Context(), req.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, brand)
}

func (s *Server) handleDeleteBrand(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	if err := s.reviews.DeleteBrand(c.Request().Context(), brand); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleBrandLogo(c echo.Context) error {
	brand, err := s.resolveBrand(c)
	if err != nil {
		return err
	}
	data, mime, err := s.reviews.BrandLogo(c.Request().Context(), brand)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(data) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no logo stored for brand")
	}
	if mime == "" {
		mime = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, mime, data)
}

// resolveBrand maps the :brand path parameter onto a configured brand id,
// tolerating near-miss spellings.
func (s *Server) resolveBrand(c echo.Context) (string, error) {
	input := c.Param("brand")
	if input == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "brand is required")
	}
	brand, err := s.reviews.ResolveBrand(c.Request().Context(), input)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return brand, nil
}
