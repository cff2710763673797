// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Funnel endpoints
	StartSessionHandler gin.HandlerFunc
	GetSessionHandler   gin.HandlerFunc
	NavigateHandler     gin.HandlerFunc
	BackHandler         gin.HandlerFunc
	RedirectHandler     gin.HandlerFunc

	// Onboarding endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc

	// Dashboard endpoints
	DashboardStateHandler  gin.HandlerFunc
	DashboardActionHandler gin.HandlerFunc
	ActivateHandler        gin.HandlerFunc

	// Payment endpoints
	PaymentMethodsHandler  gin.HandlerFunc
	PaymentStateHandler    gin.HandlerFunc
	CardInitHandler        gin.HandlerFunc
	CardCallbackHandler    gin.HandlerFunc
	TransferStartHandler   gin.HandlerFunc
	SelectBankHandler      gin.HandlerFunc
	ConfirmTransferHandler gin.HandlerFunc
	OpayStartHandler       gin.HandlerFunc
	OpayCallbackHandler    gin.HandlerFunc

	// Receipt verification
	UploadProofHandler gin.HandlerFunc
}
