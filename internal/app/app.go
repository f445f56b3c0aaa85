// Package app wires the domain services over a storage backend.
package app

import (
	"github.com/MrJamesThe3rd/levaetras/internal/billing"
	"github.com/MrJamesThe3rd/levaetras/internal/client"
	"github.com/MrJamesThe3rd/levaetras/internal/courier"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	"github.com/MrJamesThe3rd/levaetras/internal/importer"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
	"github.com/MrJamesThe3rd/levaetras/internal/statement"
	"github.com/MrJamesThe3rd/levaetras/internal/storage"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

type Services struct {
	Settings     *settings.Service
	Clients      *client.Service
	Couriers     *courier.Service
	Requests     *delivery.Service
	Invoices     *invoice.Service
	Transactions *transaction.Service
	Billing      *billing.Service
	Importer     *importer.Service
	Statements   *statement.Service
}

func NewServices(backend storage.Backend, transactions transaction.Repository, opts ...invoice.Option) *Services {
	var (
		settingsSvc = settings.NewService(backend)
		clients     = client.NewService(storage.NewCollection(backend, storage.KeyClients, client.Seed))
		couriers    = courier.NewService(storage.NewCollection(backend, storage.KeyCouriers, courier.Seed))
		requests    = delivery.NewService(storage.NewCollection[*delivery.Request](backend, storage.KeyRequests, nil), settingsSvc)
		invoices    = invoice.NewService(storage.NewCollection[*invoice.Invoice](backend, storage.KeyInvoices, nil), opts...)
		txSvc       = transaction.NewService(transactions)
	)

	return &Services{
		Settings:     settingsSvc,
		Clients:      clients,
		Couriers:     couriers,
		Requests:     requests,
		Invoices:     invoices,
		Transactions: txSvc,
		Billing:      billing.NewService(requests, clients, settingsSvc, invoices, txSvc),
		Importer:     importer.NewService(settingsSvc),
		Statements:   statement.NewService(invoices),
	}
}
