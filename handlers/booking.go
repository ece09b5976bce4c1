package handlers

import (
	"errors"
	"net/http"

	"taxline/middleware"
	"taxline/services/scheduling"
	"taxline/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the scheduling operations over REST, next to
// the conversational path. Both surfaces call the same core.
type BookingHandler struct {
	Scheduler scheduling.SchedulingService
}

func NewBookingHandler(scheduler scheduling.SchedulingService) *BookingHandler {
	return &BookingHandler{Scheduler: scheduler}
}

// respondSchedulingError maps a scheduling refusal onto an HTTP status
// and surfaces its user-facing message.
func respondSchedulingError(c *gin.Context, err error) {
	var se *scheduling.Error
	if !errors.As(err, &se) {
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
		return
	}

	status := http.StatusBadRequest
	switch se.Code {
	case scheduling.CodeNotVerified:
		status = http.StatusUnauthorized
	case scheduling.CodeSlotTaken:
		status = http.StatusConflict
	case scheduling.CodeBookingNotFound:
		status = http.StatusNotFound
	case scheduling.CodeRemoteError:
		status = http.StatusBadGateway
	}
	utils.JSONError(c, status, string(se.Code), se.Message)
}

type createBookingRequest struct {
	DateTime string `json:"date_time" binding:"required"`
	Topic    string `json:"topic"`
}

func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	conf, err := h.Scheduler.CreateBooking(c.Request.Context(), sess, req.DateTime, req.Topic)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conf)
}

func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	bookings, err := h.Scheduler.ListBookings(c.Request.Context(), sess)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	resp := gin.H{"bookings": bookings}
	if len(bookings) == 0 {
		resp["message"] = "You have no upcoming bookings."
	}
	c.JSON(http.StatusOK, resp)
}

type cancelBookingRequest struct {
	OriginalDateTime string `json:"original_datetime" binding:"required"`
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Scheduler.CancelBooking(c.Request.Context(), sess, req.OriginalDateTime)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Your booking on " + req.OriginalDateTime + " has been cancelled.",
		"booking": booking,
	})
}

type rescheduleBookingRequest struct {
	OriginalDateTime string `json:"original_datetime" binding:"required"`
	NewDateTime      string `json:"new_datetime" binding:"required"`
}

func (h *BookingHandler) RescheduleBookingHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req rescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Scheduler.RescheduleBooking(c.Request.Context(), sess, req.OriginalDateTime, req.NewDateTime)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Your booking has been moved to " + booking.Start.Format("2006-01-02 15:04") + ".",
		"booking": booking,
	})
}
