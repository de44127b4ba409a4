package models

import "time"

// FeedbackBlock is one graded unit: strengths, weaknesses and a score
// out of 100. The same shape is used overall and per question.
type FeedbackBlock struct {
	Strengths           []string `bson:"strengths" json:"strengths"`
	AreasForImprovement []string `bson:"areas_for_improvement" json:"areas_for_improvement"`
	Score               int      `bson:"score" json:"score"`
}

// Feedback is the graded evaluation of one interview. Questions holds
// one block per question, in question order.
type Feedback struct {
	Overall   FeedbackBlock   `bson:"overall" json:"overall"`
	Questions []FeedbackBlock `bson:"questions" json:"questions"`
}

// FeedbackRecord is the persisted feedback document, keyed one-to-one
// by interview id. Written once; treated as immutable afterwards.
type FeedbackRecord struct {
	InterviewID string     `bson:"_id" json:"interviewId"`
	Feedback    Feedback   `bson:"feedback" json:"feedback"`
	Timestamp   time.Time  `bson:"timestamp" json:"timestamp"`
	Exported    bool       `bson:"exported" json:"-"`
	ExportedAt  *time.Time `bson:"exportedAt,omitempty" json:"-"`
}
