package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmelashvili/paraglide/internal/domain"
	"github.com/gmelashvili/paraglide/internal/service/booking"
	"github.com/jackc/pgx/v5"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type bookingResponse struct {
	Reference      string               `json:"reference"`
	Status         string               `json:"status"`
	FullName       string               `json:"full_name"`
	Phone          string               `json:"phone"`
	LocationID     int64                `json:"location_id"`
	LocationName   string               `json:"location_name"`
	CountryName    string               `json:"country_name,omitempty"`
	FlightTypeID   int64                `json:"flight_type_id"`
	FlightDate     string               `json:"flight_date"`
	NumberOfPeople int                  `json:"number_of_people"`
	Currency       string               `json:"currency"`
	BasePrice      float64              `json:"base_price"`
	ServicesTotal  float64              `json:"services_total"`
	TotalPrice     float64              `json:"total_price"`
	PromoCode      string               `json:"promo_code,omitempty"`
	PromoDiscount  float64              `json:"promo_discount"`
	PromoRejection string               `json:"promo_rejection,omitempty"`
	BookingSource  string               `json:"booking_source"`
	PilotID        *int64               `json:"pilot_id,omitempty"`
	CompanyID      *int64               `json:"company_id,omitempty"`
	Services       []domain.ServiceLine `json:"additional_services,omitempty"`
}

type rejectionResponse struct {
	Error          string   `json:"error"`
	Message        string   `json:"message"`
	MissingFields  []string `json:"missing_fields,omitempty"`
	SubmittedBase  *float64 `json:"submitted_base,omitempty"`
	ComputedBase   *float64 `json:"computed_base,omitempty"`
	SubmittedTotal *float64 `json:"submitted_total,omitempty"`
	ComputedTotal  *float64 `json:"computed_total,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:reference", h.get)
	router.PUT("/:reference", h.confirm)
	router.DELETE("/:reference", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		writeRejection(c, err)
		return
	}

	resp := toBookingResponse(result.Booking)
	resp.PromoRejection = result.PromoRejection
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	b, err := h.service.ConfirmBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	b, err := h.service.CancelBooking(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func writeRejection(c *gin.Context, err error) {
	var rejection *booking.RejectionError
	if !errors.As(err, &rejection) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusBadRequest
	if rejection.Reason == booking.ReasonPersistenceFailure {
		status = http.StatusInternalServerError
	}

	resp := rejectionResponse{
		Error:         string(rejection.Reason),
		Message:       rejection.Message,
		MissingFields: rejection.MissingFields,
	}
	if rejection.Reason == booking.ReasonPriceMismatch {
		resp.SubmittedBase = &rejection.SubmittedBase
		resp.ComputedBase = &rejection.ComputedBase
		resp.SubmittedTotal = &rejection.SubmittedTotal
		resp.ComputedTotal = &rejection.ComputedTotal
	}
	c.JSON(status, resp)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		Reference:      b.Reference,
		Status:         string(b.Status),
		FullName:       b.FullName,
		Phone:          b.Phone,
		LocationID:     b.LocationID,
		LocationName:   b.LocationName,
		CountryName:    b.CountryName,
		FlightTypeID:   b.FlightTypeID,
		FlightDate:     b.FlightDate.Format("2006-01-02"),
		NumberOfPeople: b.NumberOfPeople,
		Currency:       string(b.Currency),
		BasePrice:      b.BasePrice,
		ServicesTotal:  b.ServicesTotal,
		TotalPrice:     b.TotalPrice,
		PromoCode:      b.PromoCode,
		PromoDiscount:  b.PromoDiscount,
		BookingSource:  string(b.BookingSource),
		PilotID:        b.PilotID,
		CompanyID:      b.CompanyID,
		Services:       b.Services,
	}
}
