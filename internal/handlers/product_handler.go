package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/pipeline"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/spreadsheet"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service        *service.ProductService
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewProductHandler creates a new product handler. maxUploadBytes bounds
// the multipart body accepted by ImportProducts.
func NewProductHandler(service *service.ProductService, logger *slog.Logger, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{
		service:        service,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListProducts handles GET /products
// Each of name, price, description, amount and unit may be set to
// show, hide, asc or desc; anything else is ignored.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pipeline.ParamsFromQuery(r.URL.Query())

	products, err := h.service.ListProducts(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list products", "params", params, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// Report handles GET /products/report
func (h *ProductHandler) Report(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.Report(r.Context())
	if err != nil {
		h.logger.Error("failed to build product report", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, docs, h.logger)
}

// ReportXLSX handles GET /products/report.xlsx
func (h *ProductHandler) ReportXLSX(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.Report(r.Context())
	if err != nil {
		h.logger.Error("failed to build product report", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.WriteReport(&buf, docs); err != nil {
		h.logger.Error("failed to render product report", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="products-report.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write product report", "error", err)
	}
}

// CreateProduct handles POST /product/add
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("failed to decode product", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	res, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err, "failed to create product", "name", input.Name)
		return
	}

	h.logger.Info("product created", "name", input.Name, "id", res.InsertedID)
	WriteJSON(w, http.StatusOK, res, h.logger)
}

// UpdateProduct handles PUT /products/{id}
// Fields whose JSON type does not match their kind are reported in an
// "errors" object and nothing is written.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("failed to decode product update", "id", id, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	res, err := h.service.UpdateProduct(r.Context(), id, body)
	if err != nil {
		h.writeServiceError(w, err, "failed to update product", "id", id)
		return
	}

	WriteJSON(w, http.StatusOK, res, h.logger)
}

// DeleteProducts handles DELETE /products
func (h *ProductHandler) DeleteProducts(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.DeleteAll(r.Context())
	if err != nil {
		h.logger.Error("failed to delete products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("deleted all products", "count", res.DeletedCount)
	WriteJSON(w, http.StatusOK, res, h.logger)
}

// ImportProducts handles POST /products/import with a multipart "file"
// field holding an .xlsx or .csv sheet
func (h *ProductHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.logger.Warn("invalid import form", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid form data", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "File required", h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("failed to read import file", "file", header.Filename, "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read file", h.logger)
		return
	}

	summary, err := h.service.Import(r.Context(), header.Filename, data)
	if err != nil {
		h.writeServiceError(w, err, "failed to import products", "file", header.Filename)
		return
	}

	h.logger.Info("products imported",
		"batch_id", summary.BatchID,
		"file", summary.File,
		"inserted", summary.Inserted,
		"skipped", summary.Skipped,
	)
	WriteJSON(w, http.StatusOK, summary, h.logger)
}

// writeServiceError maps service and repository errors to HTTP responses
func (h *ProductHandler) writeServiceError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	var fieldErrs service.FieldErrors

	switch {
	case errors.As(err, &fieldErrs):
		WriteFieldErrors(w, fieldErrs, h.logger)
	case errors.Is(err, service.ErrNoFields):
		WriteError(w, http.StatusBadRequest, "No updatable fields supplied", h.logger)
	case errors.Is(err, service.ErrInvalidImport):
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, repository.ErrInvalidID):
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
	case errors.Is(err, repository.ErrDuplicateName):
		WriteError(w, http.StatusConflict, "Product already exists!", h.logger)
	case errors.Is(err, repository.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
	default:
		h.logger.Error(msg, append(attrs, "error", err)...)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
