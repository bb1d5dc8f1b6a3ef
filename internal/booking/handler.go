package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/BenedictUkwenya/lifekitbackend/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateBookingRequest struct {
	ServiceID       int       `json:"service_id" binding:"required"`
	ScheduledTime   time.Time `json:"scheduled_time" binding:"required"`
	TotalPriceCents int64     `json:"total_price_cents" binding:"gte=0"`
	LocationDetails string    `json:"location_details"`
}

type DecideBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

// Create godoc
// @Summary      Create booking
// @Description  Books a service and places its price on hold in the caller's wallet.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      201  {object}  Booking
// @Failure      400  {object}  gin.H
// @Failure      402  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, req.ServiceID, req.ScheduledTime, req.TotalPriceCents, req.LocationDetails)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPrice):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		case errors.Is(err, ErrInsufficientFunds):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient wallet balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Decide godoc
// @Summary      Accept or reject a booking
// @Description  Provider-only. Confirms or cancels a pending booking; cancellation refunds the client.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200  {object}  Booking
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /bookings/{bookingID}/status [put]
func (h *Handler) Decide(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req DecideBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Decide(c.Request.Context(), bookingID, userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// Complete godoc
// @Summary      Confirm completion
// @Description  Records the caller's completion confirmation; when both parties have confirmed, the provider is paid.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  gin.H
// @Failure      403  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      409  {object}  gin.H
// @Router       /bookings/{bookingID}/complete [put]
func (h *Handler) Complete(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, state, err := h.service.Complete(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, ErrNotParticipant):
			c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this booking"})
		case errors.Is(err, ErrConflictingState):
			c.JSON(http.StatusConflict, gin.H{"error": "booking cannot be completed in its current state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": state, "booking": b})
}

// ListForClient godoc
// @Summary      List my bookings as client
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Router       /bookings/client [get]
func (h *Handler) ListForClient(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.service.ListForClient(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListForProvider godoc
// @Summary      List my bookings as provider
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Router       /bookings/provider [get]
func (h *Handler) ListForProvider(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	bookings, err := h.service.ListForProvider(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ProviderSchedule godoc
// @Summary      Provider's blocked slots
// @Description  Public calendar view derived from the provider's active bookings.
// @Tags         bookings
// @Produce      json
// @Success      200  {array}   BlockedSlot
// @Failure      400  {object}  gin.H
// @Router       /bookings/provider-schedule/{providerID} [get]
func (h *Handler) ProviderSchedule(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("providerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	slots, err := h.service.ProviderSchedule(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, slots)
}
