// internal/handlers/common.go

// Package handlers exposes the pharma network operations over HTTP. Each
// handler validates its request, invokes the matching smart contract through
// the gateway, and wraps the contract's JSON output in the API envelope.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
	"github.com/sandeepmed2/pharma-network/internal/utils"
)

// contractErrorResponse maps a contract error to its HTTP status via the
// taxonomy kind embedded in the message. Errors without a kind mean the
// ledger network itself failed rather than a business rule.
func contractErrorResponse(c *gin.Context, err error) {
	message := pharma.UserMessage(err.Error())

	switch pharma.KindOf(err) {
	case pharma.KindValidation:
		utils.BadRequestResponse(c, message, nil)
	case pharma.KindAuthorization:
		utils.ForbiddenResponse(c, message)
	case pharma.KindNotFound:
		utils.NotFoundResponse(c, message)
	case pharma.KindConflict, pharma.KindState:
		utils.ConflictResponse(c, message)
	default:
		logrus.WithError(err).Error("Ledger invocation failed")
		utils.BadGatewayResponse(c, "Failed to process transaction on pharma network")
	}
}
