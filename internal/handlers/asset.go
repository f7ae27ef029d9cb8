package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/davemarr/asset-inventory/internal/metrics"
	"github.com/davemarr/asset-inventory/internal/models"
	"github.com/davemarr/asset-inventory/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AssetHandler struct {
	Repo     *repo.AssetRepo
	validate *validator.Validate
}

func NewAssetHandler(r *repo.AssetRepo) *AssetHandler {
	v := validator.New()
	// Report violations under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &AssetHandler{Repo: r, validate: v}
}

// ListAssets returns all assets matching the optional search/status/type
// filters, most recent first. No filter means everything.
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.Filter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
	}

	assets, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("list assets", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	writeJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "Asset not found", http.StatusNotFound)
			return
		}
		slog.Error("get asset", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if errs := h.validateInput(input); len(errs) > 0 {
		JSONValidationErrors(w, errs)
		return
	}

	asset, err := h.Repo.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateSerial) {
			JSONError(w, "Serial number already exists", http.StatusBadRequest)
			return
		}
		slog.Error("create asset", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncAssetWrites("create")
	writeJSON(w, http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if errs := h.validateInput(input); len(errs) > 0 {
		JSONValidationErrors(w, errs)
		return
	}

	asset, err := h.Repo.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			JSONError(w, "Asset not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicateSerial):
			JSONError(w, "Serial number already exists", http.StatusBadRequest)
		default:
			slog.Error("update asset", "id", id, "err", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	metrics.IncAssetWrites("update")
	writeJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes the record permanently. The router restricts this to the
// admin role before the handler runs.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "Asset not found", http.StatusNotFound)
			return
		}
		slog.Error("delete asset", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncAssetWrites("delete")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted successfully"})
}

func (h *AssetHandler) StatsOverview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.StatsOverview(r.Context())
	if err != nil {
		slog.Error("stats overview", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// validateInput returns one FieldError per violated field, with the messages
// the web client displays verbatim.
func (h *AssetHandler) validateInput(in models.AssetInput) []FieldError {
	err := h.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "invalid input"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Field() {
		case "name":
			msg = "Asset name is required"
		case "type":
			msg = "Asset type is required"
		case "status":
			msg = "Invalid status"
		default:
			msg = "invalid value"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
