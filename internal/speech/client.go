package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL         = "https://api.assemblyai.com"
	defaultPollInterval    = 2 * time.Second
	defaultMaxPollAttempts = 60
)

// Error codes for the transcription pipeline.
const (
	CodeUploadFailed         = "upload_failed"
	CodeTranscriptionFailed  = "transcription_failed"
	CodeTranscriptionTimeout = "transcription_timeout"
)

// TranscriptionError is a typed failure from the transcription vendor.
type TranscriptionError struct {
	Code    string
	Message string
	Err     error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Code + ": " + e.Message
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// Word is a recognized word with timing and confidence.
type Word struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Transcript is the vendor's transcription job state.
type Transcript struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
	Error      string  `json:"error"`
}

// Config holds client settings; zero values fall back to defaults.
type Config struct {
	APIKey          string
	BaseURL         string
	PollInterval    time.Duration
	MaxPollAttempts int
}

// Client talks to an AssemblyAI-compatible speech-to-text API.
type Client struct {
	apiKey          string
	baseURL         string
	httpClient      *http.Client
	pollInterval    time.Duration
	maxPollAttempts int
}

func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("speech-to-text API key is required")
	}

	c := &Client{
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		pollInterval:    cfg.PollInterval,
		maxPollAttempts: cfg.MaxPollAttempts,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = defaultPollInterval
	}
	if c.maxPollAttempts <= 0 {
		c.maxPollAttempts = defaultMaxPollAttempts
	}
	return c, nil
}

// Upload sends raw audio bytes to the vendor and returns the audio URL
// to transcribe from.
func (c *Client) Upload(ctx context.Context, audio io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/upload", audio)
	if err != nil {
		return "", &TranscriptionError{Code: CodeUploadFailed, Message: "failed to build upload request", Err: err}
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("content-type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TranscriptionError{Code: CodeUploadFailed, Message: "audio upload failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TranscriptionError{
			Code:    CodeUploadFailed,
			Message: fmt.Sprintf("audio upload failed with status %d", resp.StatusCode),
		}
	}

	var body struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TranscriptionError{Code: CodeUploadFailed, Message: "invalid upload response", Err: err}
	}
	if body.UploadURL == "" {
		return "", &TranscriptionError{Code: CodeUploadFailed, Message: "upload response missing upload_url"}
	}
	return body.UploadURL, nil
}

// CreateTranscript starts a transcription job for an uploaded audio URL.
func (c *Client) CreateTranscript(ctx context.Context, audioURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return "", &TranscriptionError{Code: CodeTranscriptionFailed, Message: "failed to encode transcript request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(payload))
	if err != nil {
		return "", &TranscriptionError{Code: CodeTranscriptionFailed, Message: "failed to build transcript request", Err: err}
	}
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TranscriptionError{Code: CodeTranscriptionFailed, Message: "transcript request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TranscriptionError{
			Code:    CodeTranscriptionFailed,
			Message: fmt.Sprintf("transcript request failed with status %d", resp.StatusCode),
		}
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &TranscriptionError{Code: CodeTranscriptionFailed, Message: "invalid transcript response", Err: err}
	}
	if body.ID == "" {
		return "", &TranscriptionError{Code: CodeTranscriptionFailed, Message: "transcript response missing id"}
	}
	return body.ID, nil
}

// GetTranscript fetches the current state of a transcription job.
func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return nil, &TranscriptionError{Code: CodeTranscriptionFailed, Message: "failed to build polling request", Err: err}
	}
	req.Header.Set("authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TranscriptionError{Code: CodeTranscriptionFailed, Message: "polling request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TranscriptionError{
			Code:    CodeTranscriptionFailed,
			Message: fmt.Sprintf("polling request failed with status %d", resp.StatusCode),
		}
	}

	var transcript Transcript
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, &TranscriptionError{Code: CodeTranscriptionFailed, Message: "invalid polling response", Err: err}
	}
	return &transcript, nil
}

// Transcribe runs the full pipeline: upload the audio, create a job,
// then poll until the job completes, errors, or the attempt ceiling is
// reached. Context cancellation aborts the poll loop.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader) (*Transcript, error) {
	uploadURL, err := c.Upload(ctx, audio)
	if err != nil {
		return nil, err
	}

	jobID, err := c.CreateTranscript(ctx, uploadURL)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		transcript, err := c.GetTranscript(ctx, jobID)
		if err != nil {
			return nil, err
		}

		switch transcript.Status {
		case "completed":
			return transcript, nil
		case "error":
			return nil, &TranscriptionError{Code: CodeTranscriptionFailed, Message: transcript.Error}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	return nil, &TranscriptionError{Code: CodeTranscriptionTimeout, Message: "transcription timed out"}
}
