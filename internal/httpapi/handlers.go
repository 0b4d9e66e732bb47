package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/annvec/annvec/internal/apperr"
	"github.com/annvec/annvec/internal/kernel"
	"github.com/annvec/annvec/internal/observability"
)

// Handler implements the HTTP endpoints over a Kernel.
type Handler struct {
	kernel  *kernel.Kernel
	log     *observability.Logger
	metrics *observability.Metrics
}

// NewHandler creates a Handler.
func NewHandler(k *kernel.Kernel, log *observability.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{kernel: k, log: log, metrics: metrics}
}

// searchRequest is the shared request body for both text- and
// embedding-query search.
type searchRequest struct {
	Query     string    `json:"query,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	K         int       `json:"k"`
	Binary    bool      `json:"binary,omitempty"`
	Reorder   bool      `json:"reorder,omitempty"`
	Overshoot int       `json:"overshoot,omitempty"`
}

type searchResponse struct {
	Results []kernel.Result `json:"results"`
}

// SearchText handles POST /v1/search: an embedding-query search of
// text that the handler embeds first.
func (h *Handler) SearchText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperr.New(apperr.InvalidArgument, "method not allowed"))
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidArgument, err, "invalid request body"))
		return
	}
	if req.Query == "" {
		writeError(w, apperr.New(apperr.InvalidArgument, "query must not be empty"))
		return
	}

	results, err := h.runTextSearch(r, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, searchResponse{Results: results}, http.StatusOK)
}

// SearchEmbedding handles POST /v1/search/embedding: a search given a
// precomputed query embedding.
func (h *Handler) SearchEmbedding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperr.New(apperr.InvalidArgument, "method not allowed"))
		return
	}
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidArgument, err, "invalid request body"))
		return
	}
	if len(req.Embedding) == 0 {
		writeError(w, apperr.New(apperr.InvalidArgument, "embedding must not be empty"))
		return
	}

	results, err := h.runEmbeddingSearch(r, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, searchResponse{Results: results}, http.StatusOK)
}

func (h *Handler) runTextSearch(r *http.Request, req searchRequest) ([]kernel.Result, error) {
	ctx := r.Context()
	if req.Binary {
		return h.kernel.SearchBinaryTextResults(ctx, req.Query, req.K, req.Reorder, req.Overshoot)
	}
	return h.kernel.SearchFullTextResults(ctx, req.Query, req.K)
}

func (h *Handler) runEmbeddingSearch(r *http.Request, req searchRequest) ([]kernel.Result, error) {
	ctx := r.Context()
	if req.Binary {
		return h.kernel.SearchBinaryResults(ctx, req.Embedding, req.K, req.Reorder, req.Overshoot)
	}
	return h.kernel.SearchFullResults(ctx, req.Embedding, req.K)
}

// GetItem handles GET /v1/items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, apperr.New(apperr.InvalidArgument, "method not allowed"))
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/v1/items/")
	id, err := strconv.ParseInt(idStr, 10, 32)
	if err != nil {
		writeError(w, apperr.New(apperr.InvalidArgument, "invalid item id %q", idStr))
		return
	}

	item, getErr := h.kernel.GetItem(r.Context(), int32(id))
	if getErr != nil {
		writeError(w, getErr)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

type batchRequest struct {
	IDs []int32 `json:"ids"`
}

type batchResponse struct {
	Items []kernel.Result `json:"items"`
}

// GetItemsBatch handles POST /v1/items/batch.
func (h *Handler) GetItemsBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, apperr.New(apperr.InvalidArgument, "method not allowed"))
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.InvalidArgument, err, "invalid request body"))
		return
	}

	items, err := h.kernel.GetItemsBatch(r.Context(), req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, batchResponse{Items: items}, http.StatusOK)
}

type healthResponse struct {
	Status string `json:"status"`
	Size   int    `json:"index_size"`
	Dims   int    `json:"dims"`
}

// Health handles GET /v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, apperr.New(apperr.InvalidArgument, "method not allowed"))
		return
	}
	writeJSON(w, healthResponse{
		Status: "ok",
		Size:   h.kernel.Len(),
		Dims:   h.kernel.Dims(),
	}, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeError maps an apperr.Kind to its HTTP status code (§7) and
// writes a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.InvalidArgument:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error": %q}`, err.Error())
}
