package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"lodge-backend/pdf"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportSvc *services.ReportService
	LodgeName string
}

func NewReportController(svc *services.ReportService, lodgeName string) *ReportController {
	return &ReportController{ReportSvc: svc, LodgeName: lodgeName}
}

// period reads ?month=&year=, defaulting to the current month.
func (ctrl *ReportController) period(c *gin.Context) (services.Period, bool) {
	p := services.CurrentPeriod(ctrl.ReportSvc.Clock)
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid month")
			return p, false
		}
		p.Month = m
	}
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid year")
			return p, false
		}
		p.Year = y
	}
	if err := p.Validate(); err != nil {
		respondError(c, err)
		return p, false
	}
	return p, true
}

func wantsPDF(c *gin.Context) bool {
	return c.Query("format") == "pdf"
}

func reportFilename(kind string, p services.Period) string {
	return fmt.Sprintf("%s_report_%d_%02d.pdf", kind, p.Year, p.Month)
}

// Dashboard (GET /api/manager/dashboard)
func (ctrl *ReportController) Dashboard(c *gin.Context) {
	d, err := ctrl.ReportSvc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, d)
}

// Sales (GET /api/manager/reports/sales?month=&year=&format=pdf)
func (ctrl *ReportController) Sales(c *gin.Context) {
	p, ok := ctrl.period(c)
	if !ok {
		return
	}
	rep, err := ctrl.ReportSvc.Sales(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	if !wantsPDF(c) {
		utils.JSONSuccess(c, http.StatusOK, rep)
		return
	}
	body, err := pdf.SalesReport(ctrl.LodgeName, rep)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, reportFilename("sales", p), body)
}

// Checkins (GET /api/manager/reports/checkins)
func (ctrl *ReportController) Checkins(c *gin.Context) {
	p, ok := ctrl.period(c)
	if !ok {
		return
	}
	rep, err := ctrl.ReportSvc.Checkins(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	if !wantsPDF(c) {
		utils.JSONSuccess(c, http.StatusOK, rep)
		return
	}
	body, err := pdf.CheckinReport(ctrl.LodgeName, rep)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, reportFilename("checkin", p), body)
}

// Reservations (GET /api/manager/reports/reservations)
func (ctrl *ReportController) Reservations(c *gin.Context) {
	p, ok := ctrl.period(c)
	if !ok {
		return
	}
	rep, err := ctrl.ReportSvc.Reservations(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	if !wantsPDF(c) {
		utils.JSONSuccess(c, http.StatusOK, rep)
		return
	}
	body, err := pdf.ReservationsReport(ctrl.LodgeName, rep)
	if err != nil {
		respondError(c, err)
		return
	}
	sendPDF(c, reportFilename("reservations", p), body)
}

// Completed (GET /api/manager/reports/completed)
func (ctrl *ReportController) Completed(c *gin.Context) {
	rows, err := ctrl.ReportSvc.Completed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}
