package client

import (
	"github.com/shopspring/decimal"
)

// Modality is how a client pays for deliveries.
type Modality string

const (
	ModalityPrepaid  Modality = "pré-pago"
	ModalityInvoiced Modality = "faturado"
)

type Kind string

const (
	KindIndividual Kind = "pessoa_fisica"
	KindCompany    Kind = "pessoa_juridica"
)

// BillingFrequency is how often invoiced clients are billed.
type BillingFrequency string

const (
	FrequencyDaily   BillingFrequency = "diaria"
	FrequencyWeekly  BillingFrequency = "semanal"
	FrequencyMonthly BillingFrequency = "mensal"
)

type Status string

const (
	StatusActive   Status = "ativo"
	StatusInactive Status = "inativo"
)

type Client struct {
	ID               string           `json:"id"`
	Name             string           `json:"nome"`
	Kind             Kind             `json:"tipo"`
	Email            string           `json:"email"`
	Phone            string           `json:"telefone"`
	Address          string           `json:"endereco"`
	Neighborhood     string           `json:"bairro"`
	City             string           `json:"cidade"`
	State            string           `json:"uf"`
	PixKey           string           `json:"chavePix,omitempty"`
	Status           Status           `json:"status"`
	TotalOrders      int              `json:"totalPedidos"`
	TotalValue       decimal.Decimal  `json:"valorTotal"`
	Modality         Modality         `json:"modalidade"`
	AutoBilling      bool             `json:"ativarFaturamentoAutomatico,omitempty"`
	BillingFrequency BillingFrequency `json:"frequenciaFaturamento,omitempty"`
	BillingWeekday   string           `json:"diaDaSemanaFaturamento,omitempty"`
	Avatar           string           `json:"avatar,omitempty"`
}

func (c *Client) IsInvoiced() bool {
	return c.Modality == ModalityInvoiced
}

func (c *Client) IsPrepaid() bool {
	return c.Modality == ModalityPrepaid
}
