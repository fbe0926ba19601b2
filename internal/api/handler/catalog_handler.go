package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/telemedicina/booking-api/internal/core/ports"
)

// CatalogHandler serves the public specialty catalogue.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Doctors lists the doctors of a specialty. Lookup failures yield an empty
// list, never an error.
//
// @Summary      Doctors by specialty
// @Tags         catalogue
// @Produce      json
// @Param        id   path      string  true  "Specialty id (e.g. medicina-general)"
// @Success      200  {object}  doctorsResponse
// @Router       /especialidades/{id}/doctores [get]
func (h *CatalogHandler) Doctors(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, doctorsResponse{
		Specialty: id,
		Doctors:   h.catalog.DoctorsBySpecialty(c.Request().Context(), id),
	})
}
