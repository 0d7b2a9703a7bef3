// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strings"

	"lodge-backend/models"
	"lodge-backend/pdf"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// CreateBookingPayload accepts the structured form and the website's legacy
// shape {type:"booking", name, email, phone, message} where the stay details
// are "Key: value" lines inside message.
type CreateBookingPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`

	FullName        string `json:"full_name"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number"`
	RoomTypeID      uint   `json:"room_type_id"`
	RoomTypeName    string `json:"room_type"`
	CheckInDate     string `json:"check_in_date"`
	CheckOutDate    string `json:"check_out_date"`
	NumberOfGuests  int    `json:"number_of_guests"`
	IDType          string `json:"id_type"`
	GuestOrigin     string `json:"guest_origin"`
	PurposeOfVisit  string `json:"purpose_of_visit"`
	SpecialRequests string `json:"special_requests"`
}

type BookingCreatedResponse struct {
	BookingID     string          `json:"booking_id"`
	ReservationID uint            `json:"reservation_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerName  string          `json:"customer_name"`
}

type CheckoutPayload struct {
	RoomKeyReturned   *bool           `json:"room_key_returned"`
	RoomCondition     string          `json:"room_condition"`
	AdditionalCharges decimal.Decimal `json:"additional_charges"`
	PaymentMethod     string          `json:"payment_method"`
	AdditionalNotes   string          `json:"additional_notes"`
	CheckedOutBy      string          `json:"checked_out_by"`
}

func (p CheckoutPayload) command() services.CheckoutRequest {
	return services.CheckoutRequest{
		RoomKeyReturned:   p.RoomKeyReturned,
		RoomCondition:     p.RoomCondition,
		AdditionalCharges: p.AdditionalCharges,
		PaymentMethod:     p.PaymentMethod,
		AdditionalNotes:   p.AdditionalNotes,
		CheckedOutBy:      p.CheckedOutBy,
	}
}

// toRequest turns either payload shape into a booking command.
func (p CreateBookingPayload) toRequest() (services.BookingRequest, error) {
	req := services.BookingRequest{
		FullName:        strings.TrimSpace(p.FullName),
		Email:           strings.TrimSpace(p.Email),
		PhoneNumber:     strings.TrimSpace(p.PhoneNumber),
		RoomTypeID:      p.RoomTypeID,
		RoomTypeName:    strings.TrimSpace(p.RoomTypeName),
		NumberOfGuests:  p.NumberOfGuests,
		IDType:          p.IDType,
		GuestOrigin:     p.GuestOrigin,
		PurposeOfVisit:  p.PurposeOfVisit,
		SpecialRequests: p.SpecialRequests,
	}
	checkIn, checkOut := p.CheckInDate, p.CheckOutDate

	if p.Type == "booking" {
		msg := utils.ParseBookingMessage(p.Message)
		if req.FullName == "" {
			req.FullName = strings.TrimSpace(p.Name)
		}
		if req.PhoneNumber == "" {
			req.PhoneNumber = strings.TrimSpace(p.Phone)
		}
		req.RoomTypeName = msg.RoomType
		req.NumberOfGuests = msg.NumberOfGuests
		req.IDType = msg.IDDocument
		req.GuestOrigin = msg.Origin
		req.PurposeOfVisit = msg.PurposeOfStay
		req.SpecialRequests = msg.SpecialRequests
		checkIn, checkOut = msg.CheckIn, msg.CheckOut
	}
	if req.NumberOfGuests == 0 {
		req.NumberOfGuests = 1
	}

	var err error
	if req.CheckInDate, err = parseDateField("check_in_date", checkIn); err != nil {
		return req, err
	}
	if req.CheckOutDate, err = parseDateField("check_out_date", checkOut); err != nil {
		return req, err
	}
	return req, nil
}

// ---------------------------
// Controller
// ---------------------------

// BookingController serves the public booking endpoints.
type BookingController struct {
	ReservationSvc *services.ReservationService
	LodgeName      string
}

func NewBookingController(svc *services.ReservationService, lodgeName string) *BookingController {
	return &BookingController{ReservationSvc: svc, LodgeName: lodgeName}
}

// CreateBooking (POST /api/bookings)
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid booking payload: "+err.Error())
		return
	}
	req, err := payload.toRequest()
	if err != nil {
		respondError(c, err)
		return
	}

	res, err := ctrl.ReservationSvc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.JSONMessage(c, http.StatusCreated,
		"Booking request submitted successfully! Your booking ID is: "+res.BookingID+". We will contact you within 24 hours to confirm your reservation.",
		BookingCreatedResponse{
			BookingID:     res.BookingID,
			ReservationID: res.ID,
			TotalAmount:   res.TotalAmount,
			CustomerName:  res.Customer.FullName,
		})
}

// GetBooking (GET /api/bookings/:booking_id)
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	res, err := ctrl.ReservationSvc.GetByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// GetBookingStatus (GET /api/bookings/:booking_id/status)
func (ctrl *BookingController) GetBookingStatus(c *gin.Context) {
	res, err := ctrl.ReservationSvc.GetByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking_id":     res.BookingID,
		"status":         res.Status,
		"status_message": models.StatusMessages[res.Status],
		"check_in_date":  utils.FormatDate(res.ArrivalDate()),
		"check_out_date": utils.FormatDate(res.DepartureDate()),
		"room_type":      res.RoomType.Name,
		"room":           res.RoomName(),
		"total_amount":   res.TotalAmount,
	})
}

// Checkout (POST /api/bookings/:booking_id/checkout)
func (ctrl *BookingController) Checkout(c *gin.Context) {
	var payload CheckoutPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, "Invalid checkout payload: "+err.Error())
			return
		}
	}
	res, err := ctrl.ReservationSvc.CheckoutByBookingID(c.Request.Context(), c.Param("booking_id"), payload.command())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Checked out successfully", res)
}

// Cancel (POST /api/bookings/:booking_id/cancel)
func (ctrl *BookingController) Cancel(c *gin.Context) {
	res, err := ctrl.ReservationSvc.Cancel(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservation "+res.BookingID+" has been cancelled", res)
}

// Slip (GET /api/bookings/:booking_id/slip.pdf)
func (ctrl *BookingController) Slip(c *gin.Context) {
	res, err := ctrl.ReservationSvc.GetByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := pdf.BookingSlip(pdf.SlipData{
		LodgeName:    ctrl.LodgeName,
		BookingID:    res.BookingID,
		CustomerName: res.Customer.FullName,
		PhoneNumber:  res.Customer.PhoneNumber,
		RoomType:     res.RoomType.Name,
		RoomName:     res.RoomName(),
		CheckIn:      res.ArrivalDate(),
		CheckOut:     res.DepartureDate(),
		Nights:       res.DurationDays(),
		Guests:       res.NumberOfGuests,
		Status:       string(res.Status),
		TotalAmount:  res.TotalAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, "booking_"+res.BookingID+".pdf", body)
}

func sendPDF(c *gin.Context, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
