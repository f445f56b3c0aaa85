package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/levaetras/internal/app"
	"github.com/MrJamesThe3rd/levaetras/internal/auth"
	"github.com/MrJamesThe3rd/levaetras/internal/billing"
	"github.com/MrJamesThe3rd/levaetras/internal/delivery"
	apihttp "github.com/MrJamesThe3rd/levaetras/internal/http"
	"github.com/MrJamesThe3rd/levaetras/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/levaetras/internal/http/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/http/request"
	statementHandler "github.com/MrJamesThe3rd/levaetras/internal/http/statement"
	txHandler "github.com/MrJamesThe3rd/levaetras/internal/http/transaction"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
	"github.com/MrJamesThe3rd/levaetras/internal/storage"
	"github.com/MrJamesThe3rd/levaetras/internal/transaction"
)

type fixture struct {
	router        http.Handler
	transactions  *transaction.MockRepository
	neighborhoods map[string]string
	admin         string
	client1       string
	client2       string
	courier1      string
	courier2      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	txRepo := transaction.NewMockRepository(ctrl)
	svc := app.NewServices(storage.NewMemory(), txRepo)

	tokens := auth.NewTokens([]byte("test-secret"), time.Hour)

	router := apihttp.New(tokens, []string{"*"}, apihttp.Handlers{
		Requests:      request.NewHandler(svc.Requests, svc.Billing, svc.Clients, svc.Couriers),
		Invoices:      invoiceHandler.NewHandler(svc.Invoices),
		Transactions:  txHandler.NewHandler(svc.Transactions, svc.Clients),
		Neighborhoods: importcsv.NewHandler(svc.Importer, svc.Settings),
		Statements:    statementHandler.NewHandler(svc.Statements),
	})

	list, err := svc.Settings.Neighborhoods(context.Background())
	require.NoError(t, err)

	ids := map[string]string{}
	for _, n := range list {
		ids[n.Name] = n.ID
	}

	issue := func(user string, role settings.UserKind, clientID string) string {
		tok, err := tokens.Issue(user, role, clientID)
		require.NoError(t, err)

		return tok
	}

	return &fixture{
		router:        router,
		transactions:  txRepo,
		neighborhoods: ids,
		admin:         issue("admin-1", settings.UserAdmin, ""),
		client1:       issue("user-c1", settings.UserClient, "client-1"),
		client2:       issue("user-c2", settings.UserClient, "client-2"),
		courier1:      issue("entregador-1", settings.UserCourier, ""),
		courier2:      issue("entregador-2", settings.UserCourier, ""),
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	return v
}

func TestRouter_Auth(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/v1/requests", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/statements", f.client1, map[string]any{}).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/v1/transactions/balance/client-2", f.client1, nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/v1/invoices/x/close", f.client1, nil).Code)
}

func TestRouter_ConcludeInvoicedRequest(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/requests", f.admin, map[string]any{
		"clienteId": "client-1",
		"rotas": []map[string]any{
			{"bairroDestinoId": f.neighborhoods["Copacabana"], "responsavel": "Maria"},
			{"bairroDestinoId": f.neighborhoods["Ipanema"], "responsavel": "João", "valorExtra": "50"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := decode[delivery.Request](t, rec)
	assert.Equal(t, delivery.StatusAccepted, req.Status)
	require.Len(t, req.Routes, 2)

	path := "/api/v1/requests/" + req.ID

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, path, f.client2, nil).Code)
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, f.client1, nil).Code)

	rec = f.do(t, http.MethodPatch, path+"/status", f.admin, map[string]any{"status": "em_andamento", "entregadorId": "entregador-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPatch, path+"/status", f.admin, map[string]any{"status": "concluida"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	payments := []map[string]any{
		{
			"rotaId":         req.Routes[0].ID,
			"pagamentosTaxa": []map[string]any{{"valor": "7,00", "formaPagamentoId": "faturar-taxa"}},
		},
		{
			"rotaId":            req.Routes[1].ID,
			"pagamentosTaxa":    []map[string]any{{"valor": "8,50", "formaPagamentoId": "faturar-taxa"}},
			"pagamentosRepasse": []map[string]any{{"valor": "50,00", "formaPagamentoId": "repassar-valor"}},
		},
	}

	rec = f.do(t, http.MethodPost, path+"/reconciliation/check", f.admin, payments[:1])
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[map[string]any](t, rec)["complete"].(bool))

	rec = f.do(t, http.MethodPost, path+"/reconciliation/check", f.admin, payments)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[map[string]any](t, rec)["complete"].(bool))

	rec = f.do(t, http.MethodPatch, path+"/status", f.admin, map[string]any{"status": "concluida", "conciliacao": payments})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	effects := decode[billing.Effects](t, rec)
	assert.True(t, effects.InvoiceCreated)
	require.NotNil(t, effects.Invoice)
	assert.True(t, decimal.RequireFromString("15.50").Equal(effects.Invoice.TotalFee))
	assert.True(t, decimal.RequireFromString("50").Equal(effects.Invoice.TotalPassthrough))
	assert.Equal(t, invoice.StatusOpen, effects.Invoice.Status)

	// concluded requests no longer accept route edits
	rec = f.do(t, http.MethodPut, path, f.admin, map[string]any{"rotas": []map[string]any{}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/invoices", f.client1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]invoice.Invoice](t, rec), 1)

	rec = f.do(t, http.MethodGet, "/api/v1/invoices", f.client2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]invoice.Invoice](t, rec))

	invPath := "/api/v1/invoices/" + effects.Invoice.ID

	rec = f.do(t, http.MethodPost, invPath+"/fee-payment", f.admin, map[string]any{"detalhes": "pix"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, invoice.StatusPaid, decode[invoice.Invoice](t, rec).Status)

	rec = f.do(t, http.MethodPost, invPath+"/passthrough-payment", f.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, invoice.StatusFinalized, decode[invoice.Invoice](t, rec).Status)

	rec = f.do(t, http.MethodPost, invPath+"/items", f.admin, map[string]any{"descricao": "Avulsa", "taxaEntrega": "5"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/statements", f.admin, map[string]any{"client_id": "client-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), effects.Invoice.Number)

	rec = f.do(t, http.MethodPost, "/api/v1/statements/download", f.admin, map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
}

func TestRouter_ClientCreatesPendingRequest(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/requests", f.client2, map[string]any{
		"clienteId": "client-1",
		"rotas":     []map[string]any{{"bairroDestinoId": f.neighborhoods["Tijuca"], "responsavel": "Ana"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req := decode[delivery.Request](t, rec)
	assert.Equal(t, delivery.StatusPending, req.Status)
	assert.Equal(t, "client-2", req.ClientID)

	path := "/api/v1/requests/" + req.ID + "/status"

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPatch, path, f.client2, map[string]any{"status": "aceita"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, f.do(t, http.MethodPatch, path, f.client2, map[string]any{"status": "cancelada"}).Code)

	rec = f.do(t, http.MethodPatch, path, f.client2, map[string]any{"status": "cancelada", "justificativa": "desisti"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, delivery.StatusCancelled, decode[billing.Effects](t, rec).Request.Status)

	rec = f.do(t, http.MethodPost, "/api/v1/requests", f.admin, map[string]any{
		"clienteId": "client-1",
		"rotas":     []map[string]any{{"bairroDestinoId": "nowhere"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CourierSeesAssignedRequests(t *testing.T) {
	f := newFixture(t)

	create := func() delivery.Request {
		rec := f.do(t, http.MethodPost, "/api/v1/requests", f.admin, map[string]any{
			"clienteId": "client-1",
			"rotas":     []map[string]any{{"bairroDestinoId": f.neighborhoods["Copacabana"], "responsavel": "Maria"}},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		return decode[delivery.Request](t, rec)
	}

	assigned := create()
	unassigned := create()

	path := "/api/v1/requests/" + assigned.ID

	rec := f.do(t, http.MethodPatch, path+"/status", f.admin, map[string]any{"status": "em_andamento", "entregadorId": "entregador-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/v1/requests?courier_id=entregador-2", f.courier1, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]delivery.Request](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, assigned.ID, list[0].ID)

	rec = f.do(t, http.MethodGet, "/api/v1/requests", f.courier2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]delivery.Request](t, rec))

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, path, f.courier1, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, path, f.courier2, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/requests/"+unassigned.ID, f.courier1, nil).Code)

	cancel := map[string]any{"status": "cancelada", "justificativa": "cliente ausente"}
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPatch, path+"/status", f.courier2, cancel).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPatch, "/api/v1/requests/"+unassigned.ID+"/status", f.courier1, cancel).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, path+"/reconciliation/check", f.courier2, []map[string]any{}).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, path+"/reconciliation", f.courier2, []map[string]any{}).Code)

	handover := map[string]any{"status": "em_andamento", "entregadorId": "entregador-2"}
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPatch, path+"/status", f.courier1, handover).Code)

	rec = f.do(t, http.MethodPost, path+"/reconciliation/check", f.courier1, []map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[map[string]any](t, rec)["complete"].(bool))

	payments := []map[string]any{{
		"rotaId":         assigned.Routes[0].ID,
		"pagamentosTaxa": []map[string]any{{"valor": "7,00", "formaPagamentoId": "faturar-taxa"}},
	}}

	rec = f.do(t, http.MethodPatch, path+"/status", f.courier1, map[string]any{"status": "concluida", "conciliacao": payments})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, delivery.StatusConcluded, decode[billing.Effects](t, rec).Request.Status)
}

func TestRouter_Transactions(t *testing.T) {
	f := newFixture(t)

	f.transactions.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{ClientID: "client-2"}).
		Return([]*transaction.Transaction{
			{Type: transaction.TypeCredit, Amount: decimal.NewFromInt(100)},
			{Type: transaction.TypeDebit, Amount: decimal.RequireFromString("12.50")},
		}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/transactions/balance/client-2", f.client2, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "R$ 87,50", decode[map[string]any](t, rec)["formattedBalance"])

	f.transactions.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		Return(nil)

	rec = f.do(t, http.MethodPost, "/api/v1/transactions", f.admin, map[string]any{
		"clientId": "client-2",
		"origin":   "recharge_pix",
		"value":    "50",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "credit", decode[map[string]any](t, rec)["type"])

	rec = f.do(t, http.MethodPost, "/api/v1/transactions", f.admin, map[string]any{"clientId": "client-2", "origin": "gift", "value": "5"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ImportNeighborhoods(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "bairros.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("Bairro;Região;Taxa\nCopacabana;Zona Sul;9,00\nLapa;Centro;5,50\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/settings/neighborhoods/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.admin)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, got["created"])
	assert.EqualValues(t, 1, got["updated"])
}
