package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

type transactionResponse struct {
	ID             uuid.UUID        `json:"id"`
	Amount         int64            `json:"amount"`
	Type           transaction.Type `json:"type"`
	Category       string           `json:"category"`
	Description    string           `json:"description"`
	RawDescription string           `json:"raw_description,omitempty"`
	Date           time.Time        `json:"date"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:             tx.ID,
		Amount:         tx.Amount,
		Type:           tx.Type,
		Category:       tx.CategoryOrDefault(),
		Description:    tx.Description,
		RawDescription: tx.RawDescription,
		Date:           tx.Date,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
