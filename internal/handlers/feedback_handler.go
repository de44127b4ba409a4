package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"prepwise/server/internal/llm"
	"prepwise/server/internal/middleware"
	"prepwise/server/internal/models"
	"prepwise/server/internal/prompts"
	"prepwise/server/internal/repositories"
	"prepwise/server/internal/utils"
)

// FeedbackHandler grades answered interviews and serves feedback reads.
type FeedbackHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	interviews    InterviewRepository
	feedback      FeedbackRepository
	logger        *zap.Logger
}

func NewFeedbackHandler(provider llm.Provider, promptManager prompts.PromptProvider, interviews InterviewRepository, feedback FeedbackRepository, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		provider:      provider,
		promptManager: promptManager,
		interviews:    interviews,
		feedback:      feedback,
		logger:        logger,
	}
}

func (h *FeedbackHandler) GenerateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.FeedbackRequest](r)
	requestID := generateRequestID()

	questionsJSON, err := json.Marshal(req.Questions)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "prompt_error", "Failed to build AI prompt")
		return
	}
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "prompt_error", "Failed to build AI prompt")
		return
	}

	promptData := map[string]string{
		"Questions": string(questionsJSON),
		"Answers":   string(answersJSON),
	}

	prompt, err := h.promptManager.BuildPrompt("feedback", promptData)
	if err != nil {
		h.logger.Error("Failed to build prompt", zap.Error(err), zap.String("request_id", requestID))
		utils.Fail(w, http.StatusInternalServerError, "prompt_error", "Failed to build AI prompt")
		return
	}

	response, err := h.provider.GenerateContent(r.Context(), prompt, requestID)
	if err != nil {
		h.logger.Error("AI provider error", zap.Error(err), zap.String("request_id", requestID))
		utils.Fail(w, providerStatus(err), "ai_error", "Failed to generate feedback")
		return
	}

	// The raw text is logged for diagnosis but never returned to the caller.
	feedback, err := llm.ParseFeedback(response.Content, len(req.Questions))
	if err != nil {
		h.logger.Error("Model returned malformed feedback",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("raw_response", response.Content))
		utils.Fail(w, http.StatusInternalServerError, "malformed_feedback_response", "Failed to parse AI response as JSON")
		return
	}

	// Two independent writes with no transaction spanning them. A crash
	// between them leaves the interview flag stale until a retry.
	record := &models.FeedbackRecord{
		InterviewID: req.InterviewID,
		Feedback:    *feedback,
		Timestamp:   time.Now().UTC(),
	}
	if err := h.feedback.Upsert(r.Context(), record); err != nil {
		h.logger.Error("Failed to persist feedback", zap.Error(err), zap.String("interview_id", req.InterviewID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to save feedback")
		return
	}

	if err := h.interviews.SaveAnswers(r.Context(), req.InterviewID, req.Answers); err != nil {
		h.logger.Error("Failed to update interview after feedback",
			zap.Error(err), zap.String("interview_id", req.InterviewID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to update interview")
		return
	}

	h.logger.Info("Feedback generated",
		zap.String("request_id", requestID),
		zap.String("interview_id", req.InterviewID),
		zap.Int("overall_score", feedback.Overall.Score))

	utils.JSON(w, http.StatusOK, models.FeedbackResponse{Success: true, Feedback: feedback})
}

func (h *FeedbackHandler) GetFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.FeedbackLookupRequest](r)

	record, err := h.feedback.GetByInterviewID(r.Context(), req.InterviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrFeedbackNotFound) {
			utils.Fail(w, http.StatusNotFound, "not_found", "No feedback found for this interview.")
			return
		}
		h.logger.Error("Failed to fetch feedback", zap.Error(err), zap.String("interview_id", req.InterviewID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Error fetching feedback.")
		return
	}

	utils.JSON(w, http.StatusOK, models.DataResponse{Success: true, Data: record.Feedback})
}

func (h *FeedbackHandler) GivenInterviewsHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := h.feedback.ListInterviewIDs(r.Context())
	if err != nil {
		h.logger.Error("Failed to list graded interviews", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Error fetching interview IDs.")
		return
	}

	utils.JSON(w, http.StatusOK, models.DataResponse{Success: true, Data: ids})
}
