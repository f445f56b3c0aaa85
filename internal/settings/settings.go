package settings

import (
	"github.com/shopspring/decimal"
)

// BillingAction says what a reconciliation payment method does to the client's invoice.
type BillingAction string

const (
	ActionNone                      BillingAction = "NENHUMA"
	ActionGenerateFeeDebit          BillingAction = "GERAR_DEBITO_TAXA"
	ActionGeneratePassthroughCredit BillingAction = "GERAR_CREDITO_REPASSE"
)

type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Neighborhood is a delivery destination with its configured fee.
type Neighborhood struct {
	ID       string          `json:"id"`
	Name     string          `json:"nome"`
	Fee      decimal.Decimal `json:"taxa"`
	RegionID string          `json:"regionId"`
}

// PaymentMethod is a method the back-office accepts from clients.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// ReconciliationMethod is a payment method offered in the conciliation step.
type ReconciliationMethod struct {
	ID     string        `json:"id"`
	Name   string        `json:"nome"`
	Action BillingAction `json:"acaoFaturamento"`
}

// Role groups permissions granted to back-office users.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type UserKind string

const (
	UserAdmin   UserKind = "admin"
	UserCourier UserKind = "entregador"
	UserClient  UserKind = "cliente"
)

type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"nome"`
	Email  string   `json:"email"`
	Kind   UserKind `json:"role"`
	RoleID string   `json:"cargoId,omitempty"`
	Avatar string   `json:"avatar"`
}

// NeighborhoodRate is one row of an imported rate table.
type NeighborhoodRate struct {
	Name   string
	Region string
	Fee    decimal.Decimal
}
