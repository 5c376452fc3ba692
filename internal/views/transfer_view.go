package views

import "time"

// TransferRequest addresses the recipient either by card number or by phone
// number; exactly one must be set. Amount is a raw string per the form-field
// contract.
type TransferRequest struct {
	SenderCard     string `json:"senderCard" binding:"required"`
	RecipientCard  string `json:"recipientCard"`
	RecipientPhone string `json:"recipientPhone"`
	Amount         string `json:"amount" binding:"required"`
}

type TransactionResponse struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"` // RFC3339
	Amount        int64     `json:"amount"`
	SenderCard    int64     `json:"senderCard"`
	RecipientCard int64     `json:"recipientCard"`
}
