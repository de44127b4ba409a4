package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVendor struct {
	t *testing.T

	pollResponses []Transcript
	polls         atomic.Int32

	uploadStatus int
	createStatus int
}

func (s *stubVendor) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/upload":
			if r.Header.Get("authorization") == "" {
				s.t.Error("upload missing authorization header")
			}
			if s.uploadStatus != 0 {
				http.Error(w, "upload failed", s.uploadStatus)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example.com/audio-1"})

		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			if s.createStatus != 0 {
				http.Error(w, "bad request", s.createStatus)
				return
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				s.t.Errorf("transcript request body: %v", err)
			}
			if body["audio_url"] != "https://cdn.example.com/audio-1" {
				s.t.Errorf("unexpected audio_url %q", body["audio_url"])
			}
			json.NewEncoder(w).Encode(map[string]string{"id": "job-1"})

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v2/transcript/"):
			n := int(s.polls.Add(1)) - 1
			if n >= len(s.pollResponses) {
				n = len(s.pollResponses) - 1
			}
			json.NewEncoder(w).Encode(s.pollResponses[n])

		default:
			s.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func newTestClient(t *testing.T, vendor *stubVendor, maxAttempts int) *Client {
	t.Helper()
	server := httptest.NewServer(vendor.handler())
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		PollInterval:    time.Millisecond,
		MaxPollAttempts: maxAttempts,
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestTranscribeCompletesOnThirdPoll(t *testing.T) {
	vendor := &stubVendor{
		t: t,
		pollResponses: []Transcript{
			{ID: "job-1", Status: "queued"},
			{ID: "job-1", Status: "processing"},
			{
				ID:         "job-1",
				Status:     "completed",
				Text:       "hello world",
				Confidence: 0.93,
				Words: []Word{
					{Text: "hello", Start: 0, End: 400, Confidence: 0.95},
					{Text: "world", Start: 410, End: 800, Confidence: 0.91},
				},
			},
		},
	}
	client := newTestClient(t, vendor, 60)

	transcript, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", transcript.Text)
	assert.Len(t, transcript.Words, 2)
	assert.Equal(t, int32(3), vendor.polls.Load(), "completion on the third poll means exactly three status requests")
}

func TestTranscribeVendorError(t *testing.T) {
	vendor := &stubVendor{
		t: t,
		pollResponses: []Transcript{
			{ID: "job-1", Status: "error", Error: "audio too short"},
		},
	}
	client := newTestClient(t, vendor, 60)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"))
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, CodeTranscriptionFailed, terr.Code)
	assert.Contains(t, terr.Message, "audio too short")
}

func TestTranscribeTimesOutAtAttemptCeiling(t *testing.T) {
	vendor := &stubVendor{
		t: t,
		pollResponses: []Transcript{
			{ID: "job-1", Status: "processing"},
		},
	}
	client := newTestClient(t, vendor, 3)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"))
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, CodeTranscriptionTimeout, terr.Code)
	assert.Equal(t, int32(3), vendor.polls.Load(), "poll loop must stop at the attempt ceiling")
}

func TestTranscribeUploadFailure(t *testing.T) {
	vendor := &stubVendor{t: t, uploadStatus: http.StatusBadGateway}
	client := newTestClient(t, vendor, 60)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"))
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, CodeUploadFailed, terr.Code)
	assert.Equal(t, int32(0), vendor.polls.Load(), "no polling after a failed upload")
}

func TestTranscribeCreateFailure(t *testing.T) {
	vendor := &stubVendor{t: t, createStatus: http.StatusUnauthorized}
	client := newTestClient(t, vendor, 60)

	_, err := client.Transcribe(context.Background(), strings.NewReader("audio-bytes"))
	require.Error(t, err)

	var terr *TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, CodeTranscriptionFailed, terr.Code)
}

func TestTranscribeContextCancelled(t *testing.T) {
	vendor := &stubVendor{
		t: t,
		pollResponses: []Transcript{
			{ID: "job-1", Status: "processing"},
		},
	}
	server := httptest.NewServer(vendor.handler())
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		PollInterval:    time.Minute,
		MaxPollAttempts: 60,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Transcribe(ctx, strings.NewReader("audio-bytes"))
		done <- err
	}()

	// Give the pipeline time to reach the poll wait, then cancel.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Transcribe did not return after cancellation")
	}
}

func TestClientDefaults(t *testing.T) {
	client, err := NewClient(&Config{APIKey: "key"})
	require.NoError(t, err)

	assert.Equal(t, defaultBaseURL, client.baseURL)
	assert.Equal(t, defaultPollInterval, client.pollInterval)
	assert.Equal(t, defaultMaxPollAttempts, client.maxPollAttempts)
}
