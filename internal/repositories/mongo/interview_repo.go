package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"prepwise/server/internal/models"
	"prepwise/server/internal/repositories"
)

const interviewsCollection = "interviews"

// InterviewRepo wraps the interviews collection.
type InterviewRepo struct{ col *mongo.Collection }

func NewInterviewRepo(db *mongo.Database) *InterviewRepo {
	col := db.Collection(interviewsCollection)

	// Index for the per-user listing query.
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})

	return &InterviewRepo{col: col}
}

// Create inserts a new interview document.
func (r *InterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	if interview.ID == "" {
		return errors.New("interview id required")
	}
	_, err := r.col.InsertOne(ctx, interview)
	return err
}

// GetByID retrieves one interview.
func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// ListByUser retrieves every interview owned by a user.
func (r *InterviewRepo) ListByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveAnswers merges the collected answers onto the interview and flips
// feedbackGiven. Last writer wins; there is no optimistic-concurrency
// check.
func (r *InterviewRepo) SaveAnswers(ctx context.Context, id string, answers []models.Answer) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"answers":       answers,
			"feedbackGiven": true,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrInterviewNotFound
	}
	return nil
}
