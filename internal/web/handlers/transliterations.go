package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/tinig-app/tinig/internal/baybayin"
	"github.com/tinig-app/tinig/internal/db"
	"github.com/tinig-app/tinig/internal/metrics"
)

// maxInputChars bounds a single transliteration request. The engine is
// linear in input length; the cap exists to keep stored rows reasonable.
const maxInputChars = 5000

type TransliterationHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewTransliterationHandler(repo db.Repository, log *slog.Logger) *TransliterationHandler {
	return &TransliterationHandler{repo: repo, log: log}
}

type createTransliterationRequest struct {
	Text string `json:"text"`
}

type transliterationResponse struct {
	ID        int64  `json:"id"`
	Source    string `json:"source"`
	Language  string `json:"language"`
	Text      string `json:"text"`
	Latin     string `json:"latin"`
	Baybayin  string `json:"baybayin"`
	CreatedAt string `json:"created_at"`
}

func toTransliterationResponse(t db.Transcription) transliterationResponse {
	return transliterationResponse{
		ID:        t.ID,
		Source:    t.Source,
		Language:  t.Language,
		Text:      t.SourceText,
		Latin:     t.Latin,
		Baybayin:  t.Baybayin,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *TransliterationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransliterationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if utf8.RuneCountInString(req.Text) > maxInputChars {
		writeError(w, http.StatusBadRequest, "text must be 5000 characters or fewer")
		return
	}

	result := baybayin.TransliterateDetail(req.Text)
	metrics.Transliterations.WithLabelValues(db.SourceAPI).Inc()
	metrics.TransliterationLength.Observe(float64(utf8.RuneCountInString(req.Text)))

	tr, err := h.repo.CreateTranscription(r.Context(), db.CreateTranscriptionParams{
		Source:     db.SourceAPI,
		Language:   "tl",
		SourceText: req.Text,
		Latin:      result.Latin,
		Baybayin:   result.Baybayin,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "storing transliteration", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toTransliterationResponse(tr))
}

func (h *TransliterationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pagination(r)
	source := r.URL.Query().Get("source")
	if source != "" && source != db.SourceAPI && source != db.SourceSpeech {
		writeError(w, http.StatusBadRequest, "source must be api or speech")
		return
	}

	total, err := h.repo.CountTranscriptions(r.Context(), source)
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting transcriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rows, err := h.repo.ListTranscriptions(r.Context(), db.ListTranscriptionsParams{
		Source: source,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing transcriptions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []transliterationResponse `json:"data"`
		Pagination paginationMeta            `json:"pagination"`
	}{
		Data: lo.Map(rows, func(t db.Transcription, _ int) transliterationResponse {
			return toTransliterationResponse(t)
		}),
		Pagination: paginationMeta{Page: page, Limit: limit, Total: total},
	})
}

func (h *TransliterationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tr, err := h.repo.GetTranscription(r.Context(), id)
	if db.IsNoRows(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "getting transcription", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toTransliterationResponse(tr))
}
