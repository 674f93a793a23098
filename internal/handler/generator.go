package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/pwtool/internal/crypto"
	"github.com/vaultpass/pwtool/internal/export"
	"github.com/vaultpass/pwtool/internal/middleware"
	"github.com/vaultpass/pwtool/internal/model"
	"github.com/vaultpass/pwtool/internal/service"
)

// GeneratorHandler handles HTTP requests for password generation and export.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	resp, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// HandleExport handles POST /api/v1/export/{format} requests.
func (h *GeneratorHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("unsupported export format"))
		return
	}

	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	resp, err := h.service.Generate(r.Context(), userID, req)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(format, &buf, resp.Passwords); err != nil {
		slog.Error("export failed", "format", format, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="passwords%s"`, format.Extension()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeGenerateError(w http.ResponseWriter, err error) {
	if service.IsValidationError(err) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	if errors.Is(err, crypto.ErrEntropyUnavailable) {
		slog.Error("secure random source failed", "error", err)
	} else {
		slog.Error("password generation failed", "error", err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
