package controllers

import (
	"net/http"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomTypePayload struct {
	Name        *string          `json:"name"`
	PricePerDay *decimal.Decimal `json:"price_per_day"`
	TotalRooms  *int             `json:"total_rooms"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

func (p RoomTypePayload) input() services.RoomTypeInput {
	return services.RoomTypeInput{
		Name:        p.Name,
		PricePerDay: p.PricePerDay,
		TotalRooms:  p.TotalRooms,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc}
}

// PublicList (GET /api/room-types) only shows active room types.
func (ctrl *RoomTypeController) PublicList(c *gin.Context) {
	ctrl.list(c, true)
}

// List (GET /api/manager/room-types)
func (ctrl *RoomTypeController) List(c *gin.Context) {
	ctrl.list(c, queryBool(c, "active"))
}

func (ctrl *RoomTypeController) list(c *gin.Context, activeOnly bool) {
	types, err := ctrl.RoomTypeSvc.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctrl *RoomTypeController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rt, err := ctrl.RoomTypeSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) Create(c *gin.Context) {
	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid room type payload: "+err.Error())
		return
	}
	rt, err := ctrl.RoomTypeSvc.Create(c.Request.Context(), payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Room type "+rt.Name+" created", rt)
}

func (ctrl *RoomTypeController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload RoomTypePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid room type payload: "+err.Error())
		return
	}
	rt, err := ctrl.RoomTypeSvc.Update(c.Request.Context(), id, payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type "+rt.Name+" updated", rt)
}

func (ctrl *RoomTypeController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	name, err := ctrl.RoomTypeSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type "+name+" deleted", nil)
}
