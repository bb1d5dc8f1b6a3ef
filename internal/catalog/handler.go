package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListServices godoc
// @Summary      List service listings
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}   Service
// @Failure      500  {object}  gin.H
// @Router       /services [get]
func (h *Handler) ListServices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	services, err := h.repo.ListServices(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService godoc
// @Summary      Get service listing
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        serviceID  path  int  true  "Service ID"
// @Success      200  {object}  Service
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /services/{serviceID} [get]
func (h *Handler) GetService(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service ID"})
		return
	}

	service, err := h.repo.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// ListByProvider godoc
// @Summary      List a provider's service listings
// @Tags         services
// @Produce      json
// @Param        providerID  path  int  true  "Provider ID"
// @Success      200  {array}   Service
// @Failure      400  {object}  gin.H
// @Router       /services/provider/{providerID} [get]
func (h *Handler) ListByProvider(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider ID"})
		return
	}

	services, err := h.repo.ListServicesByProvider(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}
