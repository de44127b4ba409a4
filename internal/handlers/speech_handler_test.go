package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"prepwise/server/internal/models"
	"prepwise/server/internal/speech"
)

func audioRequest(t *testing.T, field string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "answer.webm")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake-audio-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSpeechToTextHandlerSuccess(t *testing.T) {
	transcriber := &mockTranscriber{
		transcribeFn: func(ctx context.Context, audio io.Reader) (*speech.Transcript, error) {
			data, err := io.ReadAll(audio)
			if err != nil {
				t.Fatalf("read audio: %v", err)
			}
			if string(data) != "fake-audio-bytes" {
				t.Fatalf("unexpected audio payload: %q", data)
			}
			return &speech.Transcript{
				Status:     "completed",
				Text:       "hello world",
				Confidence: 0.93,
				Words: []speech.Word{
					{Text: "hello", Start: 0, End: 400, Confidence: 0.95},
					{Text: "world", Start: 410, End: 800, Confidence: 0.91},
				},
			}, nil
		},
	}

	h := NewSpeechHandler(transcriber, testLogger())
	rec := httptest.NewRecorder()
	h.SpeechToTextHandler(rec, audioRequest(t, "audio"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success    bool          `json:"success"`
		Text       string        `json:"text"`
		Confidence float64       `json:"confidence"`
		Words      []speech.Word `json:"words"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Success || resp.Text != "hello world" || len(resp.Words) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSpeechToTextHandlerMissingAudio(t *testing.T) {
	transcriber := &mockTranscriber{
		transcribeFn: func(ctx context.Context, audio io.Reader) (*speech.Transcript, error) {
			t.Fatal("transcriber must not run without an audio file")
			return nil, nil
		},
	}

	h := NewSpeechHandler(transcriber, testLogger())
	rec := httptest.NewRecorder()
	h.SpeechToTextHandler(rec, audioRequest(t, "wrong-field"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope models.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if envelope.Error.Code != "no_audio_file" {
		t.Fatalf("expected no_audio_file, got %s", envelope.Error.Code)
	}
}

func TestSpeechToTextHandlerPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "timeout",
			err:        &speech.TranscriptionError{Code: speech.CodeTranscriptionTimeout, Message: "transcription timed out"},
			wantStatus: http.StatusRequestTimeout,
			wantCode:   speech.CodeTranscriptionTimeout,
		},
		{
			name:       "upload failure",
			err:        &speech.TranscriptionError{Code: speech.CodeUploadFailed, Message: "upload failed"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   speech.CodeUploadFailed,
		},
		{
			name:       "vendor failure",
			err:        &speech.TranscriptionError{Code: speech.CodeTranscriptionFailed, Message: "bad audio"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   speech.CodeTranscriptionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transcriber := &mockTranscriber{
				transcribeFn: func(ctx context.Context, audio io.Reader) (*speech.Transcript, error) {
					return nil, tt.err
				},
			}

			h := NewSpeechHandler(transcriber, testLogger())
			rec := httptest.NewRecorder()
			h.SpeechToTextHandler(rec, audioRequest(t, "audio"))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var envelope models.ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestSpeechToTextHandlerNotConfigured(t *testing.T) {
	h := NewSpeechHandler(nil, testLogger())
	rec := httptest.NewRecorder()
	h.SpeechToTextHandler(rec, audioRequest(t, "audio"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
