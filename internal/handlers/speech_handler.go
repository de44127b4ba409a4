package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"prepwise/server/internal/speech"
	"prepwise/server/internal/utils"
)

const maxAudioUploadBytes = 32 << 20

// SpeechHandler proxies recorded answers to the transcription vendor.
type SpeechHandler struct {
	transcriber Transcriber
	logger      *zap.Logger
}

func NewSpeechHandler(transcriber Transcriber, logger *zap.Logger) *SpeechHandler {
	return &SpeechHandler{transcriber: transcriber, logger: logger}
}

type transcriptionResponse struct {
	Success    bool          `json:"success"`
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
	Words      []speech.Word `json:"words"`
}

func (h *SpeechHandler) SpeechToTextHandler(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		utils.Fail(w, http.StatusInternalServerError, "not_configured", "Speech-to-text is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUploadBytes)
	file, _, err := r.FormFile("audio")
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "no_audio_file", "No audio file provided")
		return
	}
	defer file.Close()

	transcript, err := h.transcriber.Transcribe(r.Context(), file)
	if err != nil {
		var trErr *speech.TranscriptionError
		if errors.As(err, &trErr) {
			switch trErr.Code {
			case speech.CodeTranscriptionTimeout:
				utils.Fail(w, http.StatusRequestTimeout, trErr.Code, "Transcription timeout")
			case speech.CodeUploadFailed:
				utils.Fail(w, http.StatusInternalServerError, trErr.Code, "Failed to upload audio")
			default:
				utils.Fail(w, http.StatusInternalServerError, speech.CodeTranscriptionFailed, "Transcription failed")
			}
			h.logger.Error("Transcription pipeline error", zap.Error(err), zap.String("code", trErr.Code))
			return
		}
		h.logger.Error("Transcription error", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to transcribe audio")
		return
	}

	utils.JSON(w, http.StatusOK, transcriptionResponse{
		Success:    true,
		Text:       transcript.Text,
		Confidence: transcript.Confidence,
		Words:      transcript.Words,
	})
}
