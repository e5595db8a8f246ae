// internal/handlers/transferdrug.go
package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/sandeepmed2/pharma-network/internal/gateway"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
	"github.com/sandeepmed2/pharma-network/internal/utils"
)

type TransferDrugHandler struct {
	invoker gateway.Invoker
}

func NewTransferDrugHandler(invoker gateway.Invoker) *TransferDrugHandler {
	return &TransferDrugHandler{invoker: invoker}
}

type CreatePORequest struct {
	OrganizationName string `json:"organizationName" validate:"required,orgname"`
	BuyerCRN         string `json:"buyerCRN" validate:"required"`
	SellerCRN        string `json:"sellerCRN" validate:"required"`
	DrugName         string `json:"drugName" validate:"required"`
	// Quantity passes through to the contract as-is; the contract owns the
	// positive integer rule.
	Quantity json.Number `json:"quantity" validate:"required"`
}

type CreateShipmentRequest struct {
	OrganizationName string   `json:"organizationName" validate:"required,orgname"`
	BuyerCRN         string   `json:"buyerCRN" validate:"required"`
	DrugName         string   `json:"drugName" validate:"required"`
	ListOfAssets     []string `json:"listOfAssets" validate:"required,min=1"`
	TransporterCRN   string   `json:"transporterCRN" validate:"required"`
}

type UpdateShipmentRequest struct {
	OrganizationName string `json:"organizationName" validate:"required,orgname"`
	BuyerCRN         string `json:"buyerCRN" validate:"required"`
	DrugName         string `json:"drugName" validate:"required"`
	TransporterCRN   string `json:"transporterCRN" validate:"required"`
}

type RetailDrugRequest struct {
	OrganizationName string `json:"organizationName" validate:"required,orgname"`
	DrugName         string `json:"drugName" validate:"required"`
	SerialNo         string `json:"serialNo" validate:"required"`
	RetailerCRN      string `json:"retailerCRN" validate:"required"`
	CustomerAadhar   string `json:"customerAadhar" validate:"required"`
}

// POST /createPO
func (h *TransferDrugHandler) CreatePO(c *gin.Context) {
	var req CreatePORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractTransferDrug, "CreatePO",
		req.BuyerCRN, req.SellerCRN, req.DrugName, req.Quantity.String())
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       "New purchase order created",
		"purchaseorder": json.RawMessage(payload),
	})
}

// POST /createShipment
func (h *TransferDrugHandler) CreateShipment(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// The contract takes the serial list as a JSON array argument.
	listOfAssets, err := json.Marshal(req.ListOfAssets)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listOfAssets", nil)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractTransferDrug, "CreateShipment",
		req.BuyerCRN, req.DrugName, string(listOfAssets), req.TransporterCRN)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  "New shipment created",
		"shipment": json.RawMessage(payload),
	})
}

// PUT /updateShipment
func (h *TransferDrugHandler) UpdateShipment(c *gin.Context) {
	var req UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractTransferDrug, "UpdateShipment",
		req.BuyerCRN, req.DrugName, req.TransporterCRN)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Shipment updated",
		"assets":  json.RawMessage(payload),
	})
}

// PUT /retailDrug
func (h *TransferDrugHandler) RetailDrug(c *gin.Context) {
	var req RetailDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	payload, err := h.invoker.Submit(req.OrganizationName, pharma.ContractTransferDrug, "RetailDrug",
		req.DrugName, req.SerialNo, req.RetailerCRN, req.CustomerAadhar)
	if err != nil {
		contractErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Drug retailed",
		"drug":    json.RawMessage(payload),
	})
}
