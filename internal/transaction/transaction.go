package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type is the direction of a movement on a client's balance.
type Type string

const (
	TypeCredit Type = "credit"
	TypeDebit  Type = "debit"
)

// Origin says what caused a transaction.
type Origin string

const (
	OriginRechargePix     Origin = "recharge_pix"
	OriginRechargeCard    Origin = "recharge_card"
	OriginRechargeManual  Origin = "recharge_manual"
	OriginDeliveryFee     Origin = "delivery_fee"
	OriginCancellationFee Origin = "cancellation_fee"
)

// Transaction is an entry in a pre-paid client's balance ledger.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Type         Type            `json:"type"`
	Origin       Origin          `json:"origin"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"value"`
	ClientID     string          `json:"clientId"`
	ClientName   string          `json:"clientName"`
	ClientAvatar string          `json:"clientAvatar,omitempty"`
	CreatedAt    time.Time       `json:"date"`
}

// Signed returns the amount as it affects the balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeDebit {
		return t.Amount.Neg()
	}

	return t.Amount
}
