package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tinig-app/tinig/internal/metrics"
)

// Client talks to a whisper.cpp server (POST /inference, multipart audio,
// JSON response). The language hint defaults to Tagalog.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

type Option func(*Client)

// WithLanguage overrides the language hint sent to the recognizer.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		language: "tl",
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Transcribe uploads the audio and returns the recognized text.
// Returns ErrNoSpeech when the recognizer produced only whitespace.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return Result{}, fmt.Errorf("writing audio: %w", err)
	}
	if err := mw.WriteField("language", c.language); err != nil {
		return Result{}, fmt.Errorf("writing language field: %w", err)
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return Result{}, fmt.Errorf("writing response_format field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/inference", &body)
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ASRRequestsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("calling recognizer: %w", err)
	}
	defer resp.Body.Close()
	metrics.ASRLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.ASRRequestsTotal.WithLabelValues("error").Inc()
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("recognizer returned %d: %s", resp.StatusCode, payload)
	}

	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.ASRRequestsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("decoding recognizer response: %w", err)
	}
	if out.Error != "" {
		metrics.ASRRequestsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("recognizer error: %s", out.Error)
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		metrics.ASRRequestsTotal.WithLabelValues("no_speech").Inc()
		return Result{}, ErrNoSpeech
	}

	metrics.ASRRequestsTotal.WithLabelValues("ok").Inc()
	return Result{Text: text}, nil
}
