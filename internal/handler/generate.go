package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/prompt-studio/internal/models"
)

const emptyRequestMessage = "Please enter a prompt or select at least one option."

type generateService interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error)
}

type GenerateHandler struct {
	service generateService
}

func NewGenerateHandler(service generateService) *GenerateHandler {
	return &GenerateHandler{
		service: service,
	}
}

// GenerateImages godoc
// @Summary Generate images from a short prompt
// @Description Expands the prompt and selected style options with an LLM, then renders a batch of three images.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body models.GenerateRequest true "Generate request"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate_images [post]
func (h *GenerateHandler) GenerateImages(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, emptyRequestMessage)
		return
	}

	resp, err := h.service.Generate(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrEmptyRequest):
		writeError(w, http.StatusBadRequest, emptyRequestMessage)
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
