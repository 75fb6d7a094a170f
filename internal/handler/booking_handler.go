package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/middleware"
	"github.com/gearshare/service-rental/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.Subject())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.DecideBooking)
		bookings.DELETE("/:id", h.CancelBooking)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// DecideBooking handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved query parameter must be true or false")
		return
	}

	result, err := h.service.Approve(c.Request.Context(), bookingID, userID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles DELETE /bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBookings handles GET /bookings?state=&from=&size= for the booker.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	from, size, err := parseOffsetParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListByBooker(c.Request.Context(), userID, c.DefaultQuery("state", "ALL"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOwnerBookings handles GET /bookings/owner?state=&from=&size= for the
// owner of the booked items.
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	userID, ok := middleware.SubjectID(c)
	if !ok {
		response.BadRequest(c, middleware.SubjectHeader+" header is required")
		return
	}

	from, size, err := parseOffsetParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), userID, c.DefaultQuery("state", "ALL"), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
