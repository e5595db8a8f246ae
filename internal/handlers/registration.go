// internal/handlers/registration.go
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/sandeepmed2/pharma-network/internal/gateway"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
	"github.com/sandeepmed2/pharma-network/internal/utils"
)

type RegistrationHandler struct {
	invoker gateway.Invoker
}

func NewRegistrationHandler(invoker gateway.Invoker) *RegistrationHandler {
	return &RegistrationHandler{invoker: invoker}
}

type RegisterCompanyRequest struct {
	OrganizationName string `json:"organizationName" validate:"required,orgname"`
	CompanyCRN       string `json:"companyCRN" validate:"required"`
	CompanyName      string `json:"companyName" validate:"required"`
	Location         string `json:"location" validate:"required"`
	OrganisationRole string `json:"organisationRole" validate:"required"`
}

type AddDrugRequest struct {
	OrganizationName string `json:"organizationName" validate:"required,orgname"`
	DrugName         string `json:"drugName" validate:"required"`
	SerialNo         string `json:"serialNo" validate:"required"`
	MfgDate          string `json:"mfgDate" validate:"required"`
	ExpDate          string `json:"expDate" validate:"required"`
	CompanyCRN       string `json:"companyCRN" validate:"required"`
}

// POST /registerCompany
func (h *RegistrationHandler) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractRegistration, "RegisterCompany",
		req.CompanyCRN, req.CompanyName, req.Location, req.OrganisationRole)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "New company registered",
		"company": json.RawMessage(payload),
	})
}

// POST /addDrug
func (h *RegistrationHandler) AddDrug(c *gin.Context) {
	var req AddDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractRegistration, "AddDrug",
		req.DrugName, req.SerialNo, req.MfgDate, req.ExpDate, req.CompanyCRN)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "New drug added",
		"drug":    json.RawMessage(payload),
	})
}
