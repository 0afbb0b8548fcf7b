package handlers

import (
	"net/http"
	"time"

	"flynext/models"
	"flynext/services/payment"
	"flynext/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidatePaymentHandler handles POST /api/user/payment/validate.
func ValidatePaymentHandler(c *gin.Context) {
	var req models.CardDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := payment.ValidateCard(req.CardNumber, req.ExpiryDate, time.Now()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment details are valid"})
}

// InvoiceHandler handles POST /api/user/payment/invoice and returns the PDF.
func InvoiceHandler(c *gin.Context) {
	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Booking == nil || req.Payment == nil || req.User == nil {
		utils.JSONError(c, http.StatusBadRequest, "booking, payment and user are required", "")
		return
	}
	pdf, err := payment.GenerateInvoice(req.Booking, req.Payment, req.User)
	if err != nil {
		getLogger(c).Error("invoice generation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Invoice generation failed", "")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoice.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
