package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/levaetras/internal/http/render"
	"github.com/MrJamesThe3rd/levaetras/internal/importer"
	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc   *importer.Service
	settingsSvc *settings.Service
}

func NewHandler(importSvc *importer.Service, settingsSvc *settings.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		settingsSvc: settingsSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/import", h.importRates)
}

type importResponse struct {
	Created        int                     `json:"created"`
	Updated        int                     `json:"updated"`
	RegionsCreated int                     `json:"regionsCreated"`
	Neighborhoods  []settings.Neighborhood `json:"neighborhoods"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	neighborhoods, err := h.settingsSvc.Neighborhoods(r.Context())
	if err != nil {
		render.Internal(w, "failed to list neighborhoods", err)
		return
	}

	render.JSON(w, http.StatusOK, neighborhoods)
}

func (h *Handler) importRates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidTable) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		render.Internal(w, "failed to import neighborhoods", err)

		return
	}

	neighborhoods, err := h.settingsSvc.Neighborhoods(r.Context())
	if err != nil {
		render.Internal(w, "failed to list neighborhoods", err)
		return
	}

	render.JSON(w, http.StatusOK, importResponse{
		Created:        result.Created,
		Updated:        result.Updated,
		RegionsCreated: result.RegionsCreated,
		Neighborhoods:  neighborhoods,
	})
}
