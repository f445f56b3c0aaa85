package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/money"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID          `json:"id"`
	Type         transaction.Type   `json:"type"`
	Origin       transaction.Origin `json:"origin"`
	Description  string             `json:"description"`
	Amount       decimal.Decimal    `json:"value"`
	Formatted    string             `json:"formattedValue"`
	ClientID     string             `json:"clientId"`
	ClientName   string             `json:"clientName"`
	ClientAvatar string             `json:"clientAvatar,omitempty"`
	CreatedAt    time.Time          `json:"date"`
}

type balanceResponse struct {
	ClientID  string          `json:"clientId"`
	Balance   decimal.Decimal `json:"balance"`
	Formatted string          `json:"formattedBalance"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		Type:         tx.Type,
		Origin:       tx.Origin,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Formatted:    money.Format(tx.Signed()),
		ClientID:     tx.ClientID,
		ClientName:   tx.ClientName,
		ClientAvatar: tx.ClientAvatar,
		CreatedAt:    tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toBalanceResponse(clientID string, balance decimal.Decimal) balanceResponse {
	return balanceResponse{ClientID: clientID, Balance: balance, Formatted: money.Format(balance)}
}
