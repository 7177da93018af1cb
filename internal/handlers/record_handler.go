package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/shop-admin/backend/internal/models"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/repository"
	"github.com/Lixing-Zhang/shop-admin/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// RecordHandler handles employee record HTTP requests
type RecordHandler struct {
	service *service.RecordService
	logger  *slog.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(service *service.RecordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		logger:  logger,
	}
}

// ListRecords handles GET /record
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list records")
		return
	}
	WriteJSON(w, http.StatusOK, records, h.logger)
}

// GetRecord handles GET /record/{id}
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.service.GetRecord(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get record", "id", id)
		return
	}
	WriteJSON(w, http.StatusOK, record, h.logger)
}

// CreateRecord handles POST /record/add
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	res, err := h.service.CreateRecord(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err, "failed to create record")
		return
	}
	WriteJSON(w, http.StatusOK, res, h.logger)
}

// UpdateRecord handles POST /update/{id}
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	res, err := h.service.UpdateRecord(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, err, "failed to update record", "id", id)
		return
	}

	h.logger.Info("record updated", "id", id, "modified", res.ModifiedCount)
	WriteJSON(w, http.StatusOK, res, h.logger)
}

// DeleteRecord handles DELETE /{id}
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.service.DeleteRecord(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to delete record", "id", id)
		return
	}

	h.logger.Info("record deleted", "id", id)
	WriteJSON(w, http.StatusOK, res, h.logger)
}

func (h *RecordHandler) writeServiceError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	var fieldErrs service.FieldErrors

	switch {
	case errors.As(err, &fieldErrs):
		WriteFieldErrors(w, fieldErrs, h.logger)
	case errors.Is(err, repository.ErrInvalidID):
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
	case errors.Is(err, repository.ErrRecordNotFound):
		WriteError(w, http.StatusNotFound, "Record not found", h.logger)
	default:
		h.logger.Error(msg, append(attrs, "error", err)...)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
