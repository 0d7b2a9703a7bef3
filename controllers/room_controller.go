package controllers

import (
	"net/http"
	"strconv"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomPayload struct {
	RoomTypeID uint    `json:"room_type_id"`
	RoomName   *string `json:"room_name"`
	IsActive   *bool   `json:"is_active"`
}

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// List (GET /api/manager/rooms?room_type_id=)
func (ctrl *RoomController) List(c *gin.Context) {
	var roomTypeID uint
	if raw := c.Query("room_type_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid room_type_id")
			return
		}
		roomTypeID = uint(v)
	}
	rooms, err := ctrl.RoomSvc.List(c.Request.Context(), roomTypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) Create(c *gin.Context) {
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid room payload: "+err.Error())
		return
	}
	room, err := ctrl.RoomSvc.Create(c.Request.Context(), services.RoomInput{
		RoomTypeID: payload.RoomTypeID,
		RoomName:   payload.RoomName,
		IsActive:   payload.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Room "+room.RoomName+" created", room)
}

func (ctrl *RoomController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid room payload: "+err.Error())
		return
	}
	room, err := ctrl.RoomSvc.Update(c.Request.Context(), id, services.RoomInput{
		RoomName: payload.RoomName,
		IsActive: payload.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room "+room.RoomName+" updated", room)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	name, err := ctrl.RoomSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room "+name+" deleted", nil)
}
