package handlers

import (
	"context"
	"io"

	"prepwise/server/internal/models"
	"prepwise/server/internal/speech"
)

// InterviewRepository captures the interview persistence operations
// required by handlers.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByUser(ctx context.Context, userID string) ([]models.Interview, error)
	SaveAnswers(ctx context.Context, id string, answers []models.Answer) error
}

// FeedbackRepository captures the feedback persistence operations
// required by handlers.
type FeedbackRepository interface {
	Upsert(ctx context.Context, record *models.FeedbackRecord) error
	GetByInterviewID(ctx context.Context, interviewID string) (*models.FeedbackRecord, error)
	ListInterviewIDs(ctx context.Context) ([]string, error)
}

// UserRepository captures the user persistence operations required by
// handlers.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Transcriber runs the full speech-to-text pipeline on one audio clip.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (*speech.Transcript, error)
}
