package statement

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/levaetras/internal/http/render"
	"github.com/MrJamesThe3rd/levaetras/internal/invoice"
	"github.com/MrJamesThe3rd/levaetras/internal/statement"
)

const summaryFile = "resumo.txt"

type Handler struct {
	svc *statement.Service
}

func NewHandler(svc *statement.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	ClientID  string         `json:"client_id,omitempty"`
	Status    invoice.Status `json:"status,omitempty"`
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
}

func (req exportRequest) filter() statement.Filter {
	return statement.Filter{
		ClientID:  req.ClientID,
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
}

type invoiceResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	ClientName    string          `json:"client_name"`
	Status        invoice.Status  `json:"status"`
	TotalFee      decimal.Decimal `json:"total_fee"`
	Passthrough   decimal.Decimal `json:"total_passthrough"`
	NetSettlement decimal.Decimal `json:"net_settlement"`
	File          string          `json:"file"`
}

type exportMetadataResponse struct {
	Invoices []invoiceResponse `json:"invoices"`
	Summary  string            `json:"summary"`
}

func toInvoiceResponse(item statement.Item) invoiceResponse {
	inv := item.Invoice

	return invoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		ClientName:    inv.ClientName,
		Status:        inv.Status,
		TotalFee:      inv.TotalFee,
		Passthrough:   inv.TotalPassthrough,
		NetSettlement: statement.NetSettlement(inv),
		File:          filepath.Base(item.FilePath),
	}
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !render.Decode(w, r, &req) {
		return
	}

	tmpDir, err := os.MkdirTemp("", "levaetras-statements-*")
	if err != nil {
		render.Internal(w, "failed to create temp dir", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.svc.Export(r.Context(), req.filter(), tmpDir)
	if err != nil {
		render.Internal(w, "failed to export statements", err)
		return
	}

	resp := exportMetadataResponse{
		Invoices: make([]invoiceResponse, 0, len(items)),
		Summary:  h.svc.Summary(items),
	}

	for _, item := range items {
		resp.Invoices = append(resp.Invoices, toInvoiceResponse(item))
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !render.Decode(w, r, &req) {
		return
	}

	tmpDir, err := os.MkdirTemp("", "levaetras-statements-*")
	if err != nil {
		render.Internal(w, "failed to create temp dir", err)
		return
	}
	defer os.RemoveAll(tmpDir)

	items, err := h.svc.Export(r.Context(), req.filter(), tmpDir)
	if err != nil {
		render.Internal(w, "failed to export statements", err)
		return
	}

	if err := os.WriteFile(filepath.Join(tmpDir, summaryFile), []byte(h.svc.Summary(items)), 0o644); err != nil {
		render.Internal(w, "failed to write summary", err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"faturas_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
