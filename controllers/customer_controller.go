package controllers

import (
	"net/http"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	CustomerSvc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

// List (GET /api/manager/customers?search=)
func (ctrl *CustomerController) List(c *gin.Context) {
	customers, err := ctrl.CustomerSvc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customers)
}

// Get (GET /api/manager/customers/:id) includes the customer's reservations.
func (ctrl *CustomerController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	customer, err := ctrl.CustomerSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, customer)
}
