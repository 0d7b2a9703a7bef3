package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case services.IsGuard(err):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func badRequest(c *gin.Context, msg string) {
	utils.JSONError(c, http.StatusBadRequest, msg)
}

// uintParam reads a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func parseDateField(field, raw string) (time.Time, error) {
	t, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, &services.GuardError{Reason: "Invalid " + field + ": expected YYYY-MM-DD"}
	}
	return t, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseDateField(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
