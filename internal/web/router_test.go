package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinig-app/tinig/internal/asr"
	"github.com/tinig-app/tinig/internal/db/sqlite"
	"github.com/tinig-app/tinig/internal/web"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (asr.Result, error) {
	if f.err != nil {
		return asr.Result{}, f.err
	}
	return asr.Result{Text: f.text}, nil
}

func newTestServer(t *testing.T, transcriber asr.Transcriber) *httptest.Server {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	log := slog.New(slog.NewTextHandler(new(bytes.Buffer), nil))
	srv := httptest.NewServer(web.NewRouter(repo, log, transcriber, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

type transliterationJSON struct {
	ID       int64  `json:"id"`
	Source   string `json:"source"`
	Text     string `json:"text"`
	Latin    string `json:"latin"`
	Baybayin string `json:"baybayin"`
}

func TestCreateTransliteration(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": "Vaca 123!"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got transliterationJSON
	decode(t, resp, &got)
	assert.Equal(t, "api", got.Source)
	assert.Equal(t, "Vaca 123!", got.Text)
	assert.Equal(t, "baka 123!", got.Latin)
	assert.Equal(t, "ᜊᜃ 123!", got.Baybayin)
	assert.NotZero(t, got.ID)
}

func TestCreateTransliterationValidation(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/transliterations", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	long := strings.Repeat("a", 5001)
	resp = postJSON(t, srv.URL+"/api/v1/transliterations", fmt.Sprintf(`{"text": %q}`, long))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndGetTransliterations(t *testing.T) {
	srv := newTestServer(t, nil)

	first := postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": "ako"}`)
	require.Equal(t, http.StatusCreated, first.StatusCode)
	postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": "ikaw"}`)

	resp, err := http.Get(srv.URL + "/api/v1/transliterations")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data       []transliterationJSON `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, resp, &list)
	require.Len(t, list.Data, 2)
	assert.Equal(t, int64(2), list.Pagination.Total)
	// Newest first.
	assert.Equal(t, "ikaw", list.Data[0].Text)

	resp, err = http.Get(fmt.Sprintf("%s/api/v1/transliterations/%d", srv.URL, list.Data[1].ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got transliterationJSON
	decode(t, resp, &got)
	assert.Equal(t, "ako", got.Text)

	resp, err = http.Get(srv.URL + "/api/v1/transliterations/99999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func postAudio(t *testing.T, url string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "clip.wav")
	require.NoError(t, err)
	part.Write([]byte("RIFF...."))
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCreateTranscription(t *testing.T) {
	srv := newTestServer(t, &fakeTranscriber{text: "mahal kita"})

	resp := postAudio(t, srv.URL+"/api/v1/transcriptions")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got transliterationJSON
	decode(t, resp, &got)
	assert.Equal(t, "speech", got.Source)
	assert.Equal(t, "mahal kita", got.Text)
	assert.Equal(t, "ᜋᜑᜍ᜔ ᜃᜒᜆ", got.Baybayin)
}

func TestCreateTranscriptionNoSpeech(t *testing.T) {
	srv := newTestServer(t, &fakeTranscriber{err: asr.ErrNoSpeech})

	resp := postAudio(t, srv.URL+"/api/v1/transcriptions")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateTranscriptionNotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postAudio(t, srv.URL+"/api/v1/transcriptions")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeedback(t *testing.T) {
	srv := newTestServer(t, nil)

	created := postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": "bahay"}`)
	var tr transliterationJSON
	decode(t, created, &tr)

	url := fmt.Sprintf("%s/api/v1/transliterations/%d/feedback", srv.URL, tr.ID)
	resp := postJSON(t, url, `{"text": "ang ganda"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, fmt.Sprintf("%s/api/v1/transliterations/99999/feedback", srv.URL), `{"text": "x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	listResp, err := http.Get(url)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Data []struct {
			FeedbackText string `json:"feedback_text"`
		} `json:"data"`
	}
	decode(t, listResp, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "ang ganda", list.Data[0].FeedbackText)
}

func TestFeedbackListTotal(t *testing.T) {
	srv := newTestServer(t, nil)

	created := postJSON(t, srv.URL+"/api/v1/transliterations", `{"text": "bahay"}`)
	var tr transliterationJSON
	decode(t, created, &tr)

	url := fmt.Sprintf("%s/api/v1/transliterations/%d/feedback", srv.URL, tr.ID)
	for i := 0; i < 3; i++ {
		resp := postJSON(t, url, `{"text": "tama"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	listResp, err := http.Get(url + "?limit=2")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decode(t, listResp, &list)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, int64(3), list.Pagination.Total, "total reflects all rows, not the page")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/transliterations", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
