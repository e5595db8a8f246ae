// internal/handlers/viewlifecycle.go
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/sandeepmed2/pharma-network/internal/gateway"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
	"github.com/sandeepmed2/pharma-network/internal/utils"
)

type ViewLifecycleHandler struct {
	invoker gateway.Invoker
}

func NewViewLifecycleHandler(invoker gateway.Invoker) *ViewLifecycleHandler {
	return &ViewLifecycleHandler{invoker: invoker}
}

// Lifecycle queries are GETs; parameters arrive in the query string.
type LifecycleQuery struct {
	OrganizationName string `form:"organizationName" validate:"required,orgname"`
	DrugName         string `form:"drugName" validate:"required"`
	SerialNo         string `form:"serialNo" validate:"required"`
}

// GET /viewHistory
func (h *ViewLifecycleHandler) ViewHistory(c *gin.Context) {
	var req LifecycleQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Evaluate(req.OrganizationName, pharma.ContractViewLifecycle, "ViewHistory",
		req.DrugName, req.SerialNo)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Drug history fetched",
		"drughistory": json.RawMessage(payload),
	})
}

// GET /viewDrugCurrentState
func (h *ViewLifecycleHandler) ViewDrugCurrentState(c *gin.Context) {
	var req LifecycleQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Evaluate(req.OrganizationName, pharma.ContractViewLifecycle, "ViewDrugCurrentState",
		req.DrugName, req.SerialNo)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Drug fetched",
		"drug":    json.RawMessage(payload),
	})
}
