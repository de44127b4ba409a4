package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prepwise/server/internal/models"
	"prepwise/server/internal/repositories"
)

const feedbackCollection = "interview_feedback"

// FeedbackRepo wraps the interview_feedback collection, keyed one-to-one
// by interview id.
type FeedbackRepo struct{ col *mongo.Collection }

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{col: db.Collection(feedbackCollection)}
}

// Upsert writes a feedback record with merge semantics. The system only
// ever issues one write per interview, but a retry after a partial
// failure lands on the same document.
func (r *FeedbackRepo) Upsert(ctx context.Context, record *models.FeedbackRecord) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": record.InterviewID},
		bson.M{"$set": bson.M{
			"feedback":  record.Feedback,
			"timestamp": record.Timestamp,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// GetByInterviewID retrieves the feedback for one interview.
func (r *FeedbackRepo) GetByInterviewID(ctx context.Context, interviewID string) (*models.FeedbackRecord, error) {
	var record models.FeedbackRecord
	err := r.col.FindOne(ctx, bson.M{"_id": interviewID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrFeedbackNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListInterviewIDs returns the id of every interview that has feedback.
func (r *FeedbackRepo) ListInterviewIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// ListUnexported returns feedback records the nightly export has not
// picked up yet.
func (r *FeedbackRepo) ListUnexported(ctx context.Context, limit int64) ([]models.FeedbackRecord, error) {
	opts := options.Find().SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"exported": bson.M{"$ne": true}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.FeedbackRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkExported flags records as picked up by the export job.
func (r *FeedbackRepo) MarkExported(ctx context.Context, interviewIDs []string, at time.Time) error {
	if len(interviewIDs) == 0 {
		return nil
	}
	_, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": interviewIDs}},
		bson.M{"$set": bson.M{"exported": true, "exportedAt": at}},
	)
	return err
}
