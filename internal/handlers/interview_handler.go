package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepwise/server/internal/llm"
	"prepwise/server/internal/middleware"
	"prepwise/server/internal/models"
	"prepwise/server/internal/prompts"
	"prepwise/server/internal/repositories"
	"prepwise/server/internal/utils"
)

// InterviewHandler generates interviews and serves the read side.
type InterviewHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	interviews    InterviewRepository
	logger        *zap.Logger
}

func NewInterviewHandler(provider llm.Provider, promptManager prompts.PromptProvider, interviews InterviewRepository, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		provider:      provider,
		promptManager: promptManager,
		interviews:    interviews,
		logger:        logger,
	}
}

func generateRequestID() string {
	return uuid.New().String()
}

// providerStatus maps a provider failure onto an HTTP status.
func providerStatus(err error) int {
	var provErr *llm.ProviderError
	if errors.As(err, &provErr) && provErr.Code == llm.ErrCodeRateLimit {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (h *InterviewHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	// Get the validated request from middleware
	req := middleware.GetValidatedRequest[*models.GenerateRequest](r)
	requestID := generateRequestID()

	// build the prompt using the prompt manager
	promptData := map[string]string{
		"Role":      req.Role,
		"Level":     req.Level,
		"TechStack": req.TechStack,
		"Type":      req.Type,
		"Amount":    strconv.Itoa(req.Amount),
	}

	prompt, err := h.promptManager.BuildPrompt("questions", promptData)
	if err != nil {
		h.logger.Error("Failed to build prompt", zap.Error(err), zap.String("request_id", requestID))
		utils.Fail(w, http.StatusInternalServerError, "prompt_error", "Failed to build AI prompt")
		return
	}

	// call the AI provider with the built prompt
	response, err := h.provider.GenerateContent(r.Context(), prompt, requestID)
	if err != nil {
		h.logger.Error("AI provider error", zap.Error(err), zap.String("request_id", requestID))
		utils.Fail(w, providerStatus(err), "ai_error", "Failed to generate interview questions")
		return
	}

	questions, err := llm.ParseQuestions(response.Content)
	if err != nil {
		h.logger.Error("Model returned malformed question list",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("raw_response", response.Content))
		utils.Fail(w, http.StatusInternalServerError, "malformed_generation_response", "AI response was not a valid question list")
		return
	}

	interview := &models.Interview{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		Role:          req.Role,
		Type:          req.Type,
		Level:         req.Level,
		Company:       req.Company,
		TechStack:     utils.SplitTechStack(req.TechStack),
		Questions:     questions,
		CoverImage:    utils.CoverForCompany(req.Company),
		Finalized:     true,
		FeedbackGiven: false,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.interviews.Create(r.Context(), interview); err != nil {
		h.logger.Error("Failed to persist interview", zap.Error(err), zap.String("request_id", requestID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to save interview")
		return
	}

	h.logger.Info("Interview generated",
		zap.String("request_id", requestID),
		zap.String("interview_id", interview.ID),
		zap.String("provider", h.provider.GetProviderName()),
		zap.Int("questions", len(questions)),
		zap.Int("processing_time_ms", response.Metadata.ProcessingTime))

	utils.JSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func (h *InterviewHandler) ListInterviewsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ListInterviewsRequest](r)

	interviews, err := h.interviews.ListByUser(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error("Failed to fetch interviews", zap.Error(err), zap.String("userid", req.UserID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to fetch interviews")
		return
	}

	utils.JSON(w, http.StatusOK, models.DataResponse{Success: true, Data: interviews})
}

func (h *InterviewHandler) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.QuestionsRequest](r)

	interview, err := h.interviews.GetByID(r.Context(), req.InterviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.Fail(w, http.StatusNotFound, "not_found", "Interview not found")
			return
		}
		h.logger.Error("Failed to fetch questions", zap.Error(err), zap.String("interview_id", req.InterviewID))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to fetch questions")
		return
	}

	questions := interview.Questions
	if questions == nil {
		questions = []string{}
	}
	utils.JSON(w, http.StatusOK, models.DataResponse{Success: true, Data: questions})
}
