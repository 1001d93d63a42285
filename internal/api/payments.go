package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"homequest/server/internal/ids"
)

// bankTransferAgent labels deals recorded through the manual bank-transfer
// channel, where no agent user is involved.
const bankTransferAgent = "bank-transfer"

type BankTransferRequest struct {
	PropertyID string `json:"propertyId"`
	BuyerName  string `json:"buyerName"`
	Amount     string `json:"amount"`
}

// BankTransfer records a manual bank-transfer intent. No money moves here:
// the endpoint hands back a transaction reference and wiring instructions,
// and logs the intent as a deal for the agent dashboard.
func (h *Handler) BankTransfer(c *gin.Context) {
	var req BankTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.PropertyID == "" || req.BuyerName == "" || req.Amount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "propertyId, buyerName, and amount are required"})
		return
	}

	reference := ids.Transaction()
	notes := fmt.Sprintf("Bank transfer initiated, reference %s", reference)
	deal, err := h.deals.AddDeal(req.PropertyID, bankTransferAgent, req.BuyerName, req.Amount, notes)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, gin.H{
		"data": gin.H{
			"transactionId": reference,
			"status":        "pending",
			"deal":          deal,
			"instructions":  fmt.Sprintf("Transfer %s to account HOMEQUEST-ESCROW-001 quoting reference %s. The deal is confirmed once funds clear.", req.Amount, reference),
		},
	})
}
