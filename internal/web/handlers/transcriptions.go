package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/tinig-app/tinig/internal/asr"
	"github.com/tinig-app/tinig/internal/baybayin"
	"github.com/tinig-app/tinig/internal/db"
	"github.com/tinig-app/tinig/internal/metrics"
)

// maxAudioBytes caps uploaded recordings. Whisper-style recognizers work on
// short utterances; 15 MiB covers a couple of minutes of WAV.
const maxAudioBytes = 15 << 20

type TranscriptionHandler struct {
	repo        db.Repository
	log         *slog.Logger
	transcriber asr.Transcriber
}

func NewTranscriptionHandler(repo db.Repository, log *slog.Logger, transcriber asr.Transcriber) *TranscriptionHandler {
	return &TranscriptionHandler{repo: repo, log: log, transcriber: transcriber}
}

type transcriptionResponse struct {
	transliterationResponse
}

// Create accepts a multipart audio upload (field "audio"), sends it to the
// speech recognizer, transliterates the recognized text, and stores the
// result with source=speech.
func (h *TranscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "speech recognition is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body or audio too large")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading audio")
		return
	}

	result, err := h.transcriber.Transcribe(r.Context(), audio, header.Filename)
	if errors.Is(err, asr.ErrNoSpeech) {
		writeError(w, http.StatusUnprocessableEntity, "no speech detected")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "transcribing audio", "error", err)
		writeError(w, http.StatusBadGateway, "speech recognition failed")
		return
	}

	out := baybayin.TransliterateDetail(result.Text)
	metrics.Transliterations.WithLabelValues(db.SourceSpeech).Inc()
	metrics.TransliterationLength.Observe(float64(utf8.RuneCountInString(result.Text)))

	tr, err := h.repo.CreateTranscription(r.Context(), db.CreateTranscriptionParams{
		Source:     db.SourceSpeech,
		Language:   "tl",
		SourceText: result.Text,
		Latin:      out.Latin,
		Baybayin:   out.Baybayin,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "storing transcription", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, transcriptionResponse{toTransliterationResponse(tr)})
}
