package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

// ConfirmPayload assigns a room to a pending reservation.
type ConfirmPayload struct {
	RoomID uint `json:"room_id"`
}

// CheckInPayload: every field is optional; absent means unchanged.
type CheckInPayload struct {
	Email            *string `json:"email"`
	FullName         *string `json:"full_name"`
	PhoneNumber      *string `json:"phone_number"`
	Nationality      *string `json:"nationality"`
	IDType           *string `json:"id_type"`
	OtherIDName      *string `json:"other_id_name"`
	IDPassportNumber *string `json:"id_passport_number"`
	IDPassportPhoto  string  `json:"id_passport_photo"`

	CheckInDate     *string `json:"check_in_date"`
	CheckOutDate    *string `json:"check_out_date"`
	NumberOfGuests  *int    `json:"number_of_guests"`
	PurposeOfVisit  *string `json:"purpose_of_visit"`
	SpecialRequests *string `json:"special_requests"`
	PaymentStatus   *string `json:"payment_status"`
	RoomID          *uint   `json:"room_id"`

	RoomKeyGiven     *bool  `json:"room_key_given"`
	WelcomePackGiven *bool  `json:"welcome_pack_given"`
	AdditionalNotes  string `json:"additional_notes"`
	CheckedInBy      string `json:"checked_in_by"`
}

func (p CheckInPayload) command() (services.CheckInUpdate, error) {
	upd := services.CheckInUpdate{
		Email:            p.Email,
		FullName:         p.FullName,
		PhoneNumber:      p.PhoneNumber,
		Nationality:      p.Nationality,
		IDType:           p.IDType,
		OtherIDName:      p.OtherIDName,
		IDPassportNumber: p.IDPassportNumber,
		IDPassportPhoto:  p.IDPassportPhoto,
		NumberOfGuests:   p.NumberOfGuests,
		PurposeOfVisit:   p.PurposeOfVisit,
		SpecialRequests:  p.SpecialRequests,
		PaymentStatus:    p.PaymentStatus,
		RoomID:           p.RoomID,
		RoomKeyGiven:     p.RoomKeyGiven,
		WelcomePackGiven: p.WelcomePackGiven,
		AdditionalNotes:  p.AdditionalNotes,
		CheckedInBy:      p.CheckedInBy,
	}
	var err error
	if upd.CheckInDate, err = parseOptionalDate("check_in_date", p.CheckInDate); err != nil {
		return upd, err
	}
	if upd.CheckOutDate, err = parseOptionalDate("check_out_date", p.CheckOutDate); err != nil {
		return upd, err
	}
	return upd, nil
}

type WalkInPayload struct {
	Email            string `json:"email" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	Nationality      string `json:"nationality"`
	IDType           string `json:"id_type"`
	OtherIDName      string `json:"other_id_name"`
	IDPassportNumber string `json:"id_passport_number" binding:"required"`
	GuestOrigin      string `json:"guest_origin"`
	IDPassportPhoto  string `json:"id_passport_photo"`

	RoomID          uint   `json:"room_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	NumberOfGuests  int    `json:"number_of_guests"`
	PurposeOfVisit  string `json:"purpose_of_visit"`
	SpecialRequests string `json:"special_requests"`
	PaymentStatus   string `json:"payment_status"`

	RoomKeyGiven     *bool  `json:"room_key_given"`
	WelcomePackGiven *bool  `json:"welcome_pack_given"`
	AdditionalNotes  string `json:"additional_notes"`
	CheckedInBy      string `json:"checked_in_by"`
}

func (p WalkInPayload) command() (services.WalkInRequest, error) {
	req := services.WalkInRequest{
		Email:            strings.TrimSpace(p.Email),
		FullName:         strings.TrimSpace(p.FullName),
		PhoneNumber:      strings.TrimSpace(p.PhoneNumber),
		Nationality:      strings.TrimSpace(p.Nationality),
		IDType:           p.IDType,
		OtherIDName:      p.OtherIDName,
		IDPassportNumber: strings.TrimSpace(p.IDPassportNumber),
		GuestOrigin:      p.GuestOrigin,
		IDPassportPhoto:  p.IDPassportPhoto,
		RoomID:           p.RoomID,
		NumberOfGuests:   p.NumberOfGuests,
		PurposeOfVisit:   p.PurposeOfVisit,
		SpecialRequests:  p.SpecialRequests,
		PaymentStatus:    p.PaymentStatus,
		RoomKeyGiven:     p.RoomKeyGiven,
		WelcomePackGiven: p.WelcomePackGiven,
		AdditionalNotes:  p.AdditionalNotes,
		CheckedInBy:      p.CheckedInBy,
	}
	if req.IDType == "" {
		req.IDType = "national_id"
	}
	if req.NumberOfGuests == 0 {
		req.NumberOfGuests = 1
	}
	var err error
	if req.CheckInDate, err = parseDateField("check_in_date", p.CheckInDate); err != nil {
		return req, err
	}
	if req.CheckOutDate, err = parseDateField("check_out_date", p.CheckOutDate); err != nil {
		return req, err
	}
	return req, nil
}

// ReservationController serves the front desk.
type ReservationController struct {
	ReservationSvc *services.ReservationService
	RoomSvc        *services.RoomService
}

func NewReservationController(rs *services.ReservationService, rooms *services.RoomService) *ReservationController {
	return &ReservationController{ReservationSvc: rs, RoomSvc: rooms}
}

// List (GET /api/frontdesk/reservations?status=pending,waiting_checkin&search=&limit=&offset=)
func (ctrl *ReservationController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	rows, total, err := ctrl.ReservationSvc.List(c.Request.Context(), services.ReservationFilter{
		Statuses: utils.SplitCSV(c.Query("status")),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reservations": rows, "total": total})
}

// Get (GET /api/frontdesk/reservations/:id)
func (ctrl *ReservationController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, err := ctrl.ReservationSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// GetByBookingID (GET /api/frontdesk/bookings/:booking_id)
func (ctrl *ReservationController) GetByBookingID(c *gin.Context) {
	res, err := ctrl.ReservationSvc.GetByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// AvailableRooms (GET /api/frontdesk/reservations/:id/available-rooms)
func (ctrl *ReservationController) AvailableRooms(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res, rooms, err := ctrl.ReservationSvc.AvailableRoomsFor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, gin.H{"id": r.ID, "room_name": r.RoomName})
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reservation_id": res.ID,
		"room_type":      res.RoomType.Name,
		"check_in_date":  utils.FormatDate(res.ArrivalDate()),
		"check_out_date": utils.FormatDate(res.DepartureDate()),
		"rooms":          out,
	})
}

// Confirm (POST /api/frontdesk/reservations/:id/confirm)
func (ctrl *ReservationController) Confirm(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload ConfirmPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid confirm payload: "+err.Error())
		return
	}
	res, err := ctrl.ReservationSvc.Confirm(c.Request.Context(), id, payload.RoomID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservation "+res.BookingID+" confirmed with "+res.RoomName(), res)
}

// CheckIn (POST /api/frontdesk/reservations/:id/checkin)
func (ctrl *ReservationController) CheckIn(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload CheckInPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, "Invalid check-in payload: "+err.Error())
			return
		}
	}
	upd, err := payload.command()
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := ctrl.ReservationSvc.CheckInExisting(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, res.Customer.FullName+" checked in to "+res.RoomName(), res)
}

// WalkIn (POST /api/frontdesk/walk-in)
func (ctrl *ReservationController) WalkIn(c *gin.Context) {
	var payload WalkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid walk-in payload: "+err.Error())
		return
	}
	req, err := payload.command()
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := ctrl.ReservationSvc.WalkIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, res.Customer.FullName+" checked in to "+res.RoomName(), res)
}

// Checkout (POST /api/frontdesk/checkout/:booking_id)
func (ctrl *ReservationController) Checkout(c *gin.Context) {
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
	utils.JSONMessage(c, http.StatusOK, res.Customer.FullName+" checked out", res)
}

// Purge (DELETE /api/frontdesk/reservations/:id)
func (ctrl *ReservationController) Purge(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	result, err := ctrl.ReservationSvc.Purge(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Reservation "+result.BookingID+" deleted", result)
}

// RoomsForType (GET /api/frontdesk/room-types/:id/rooms?all=true)
func (ctrl *ReservationController) RoomsForType(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	out, err := ctrl.RoomSvc.RoomsForType(c.Request.Context(), id, !queryBool(c, "all"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}
