package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tinig-app/tinig/internal/db"
	"github.com/tinig-app/tinig/internal/web/middleware"
)

type FeedbackHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewFeedbackHandler(repo db.Repository, log *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{repo: repo, log: log}
}

type createFeedbackRequest struct {
	Text string `json:"text"`
}

type feedbackResponse struct {
	ID              int64  `json:"id"`
	TranscriptionID int64  `json:"transcription_id"`
	FeedbackText    string `json:"feedback_text"`
	CreatedAt       string `json:"created_at"`
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	transcriptionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req createFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if len(req.Text) > 500 {
		writeError(w, http.StatusBadRequest, "feedback text must be 500 characters or fewer")
		return
	}

	// The transcription must exist; the sqlite backend enforces the foreign
	// key only when the pragma is on, so check explicitly.
	if _, err := h.repo.GetTranscription(r.Context(), transcriptionID); db.IsNoRows(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	} else if err != nil {
		h.log.ErrorContext(r.Context(), "checking transcription", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	fb, err := h.repo.CreateFeedback(r.Context(), db.CreateFeedbackParams{
		TranscriptionID: transcriptionID,
		IPHash:          hashIP(middleware.ClientIP(r)),
		FeedbackText:    req.Text,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "creating feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, feedbackResponse{
		ID:              fb.ID,
		TranscriptionID: fb.TranscriptionID,
		FeedbackText:    fb.FeedbackText,
		CreatedAt:       fb.CreatedAt.Format(time.RFC3339),
	})
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	transcriptionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	page, limit, offset := pagination(r)

	total, err := h.repo.CountFeedback(r.Context(), transcriptionID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rows, err := h.repo.ListFeedback(r.Context(), db.ListFeedbackParams{
		TranscriptionID: transcriptionID,
		Limit:           int32(limit),
		Offset:          int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing feedback", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data := make([]feedbackResponse, len(rows))
	for i, row := range rows {
		data[i] = feedbackResponse{
			ID:              row.ID,
			TranscriptionID: row.TranscriptionID,
			FeedbackText:    row.FeedbackText,
			CreatedAt:       row.CreatedAt.Format(time.RFC3339),
		}
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []feedbackResponse `json:"data"`
		Pagination paginationMeta     `json:"pagination"`
	}{
		Data:       data,
		Pagination: paginationMeta{Page: page, Limit: limit, Total: total},
	})
}
