package handlers

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"prepwise/server/internal/middleware"
	"prepwise/server/internal/models"
	"prepwise/server/internal/speech"
)

// Shared fn-field mocks for handler tests. Each test sets only the
// functions it needs; an unset function means the call is unexpected.

type mockProvider struct {
	generateFn func(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error)
	calls      int
}

func (m *mockProvider) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	m.calls++
	return m.generateFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

type mockPromptManager struct {
	buildFn func(mode string, data map[string]string) (string, error)
}

func (m *mockPromptManager) BuildPrompt(mode string, data map[string]string) (string, error) {
	if m.buildFn != nil {
		return m.buildFn(mode, data)
	}
	return "prompt for " + mode, nil
}

type mockInterviewRepo struct {
	createFn      func(ctx context.Context, interview *models.Interview) error
	getByIDFn     func(ctx context.Context, id string) (*models.Interview, error)
	listByUserFn  func(ctx context.Context, userID string) ([]models.Interview, error)
	saveAnswersFn func(ctx context.Context, id string, answers []models.Answer) error
}

func (m *mockInterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	return m.createFn(ctx, interview)
}

func (m *mockInterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockInterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockInterviewRepo) SaveAnswers(ctx context.Context, id string, answers []models.Answer) error {
	return m.saveAnswersFn(ctx, id, answers)
}

type mockFeedbackRepo struct {
	upsertFn           func(ctx context.Context, record *models.FeedbackRecord) error
	getByInterviewFn   func(ctx context.Context, interviewID string) (*models.FeedbackRecord, error)
	listInterviewIDsFn func(ctx context.Context) ([]string, error)
}

func (m *mockFeedbackRepo) Upsert(ctx context.Context, record *models.FeedbackRecord) error {
	return m.upsertFn(ctx, record)
}

func (m *mockFeedbackRepo) GetByInterviewID(ctx context.Context, interviewID string) (*models.FeedbackRecord, error) {
	return m.getByInterviewFn(ctx, interviewID)
}

func (m *mockFeedbackRepo) ListInterviewIDs(ctx context.Context) ([]string, error) {
	return m.listInterviewIDsFn(ctx)
}

type mockUserRepo struct {
	createUserFn     func(ctx context.Context, user *models.User) error
	getUserByIDFn    func(ctx context.Context, id string) (*models.User, error)
	getUserByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return m.getUserByIDFn(ctx, id)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUserByEmailFn(ctx, email)
}

type mockTranscriber struct {
	transcribeFn func(ctx context.Context, audio io.Reader) (*speech.Transcript, error)
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio io.Reader) (*speech.Transcript, error) {
	return m.transcribeFn(ctx, audio)
}

var (
	_ InterviewRepository = (*mockInterviewRepo)(nil)
	_ FeedbackRepository  = (*mockFeedbackRepo)(nil)
	_ UserRepository      = (*mockUserRepo)(nil)
	_ Transcriber         = (*mockTranscriber)(nil)
)

func testLogger() *zap.Logger { return zap.NewNop() }

// validated wraps a handler with the same validation middleware the
// router applies, so tests exercise the real request path.
func validated[T middleware.Validator](h http.HandlerFunc) http.Handler {
	return middleware.ValidateRequest[T]()(h)
}
