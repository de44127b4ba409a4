package models

import "time"

// Interview types a generated question set can lean towards.
const (
	InterviewTypeTechnical   = "technical"
	InterviewTypeBehavioural = "behavioural"
	InterviewTypeMixed       = "mixed"
)

// Answer pairs a transcript with the question it answers. Answers are
// keyed by question index; a re-recorded answer replaces the earlier one.
type Answer struct {
	QuestionIndex int    `bson:"questionIndex" json:"questionIndex"`
	Transcript    string `bson:"transcript" json:"transcript"`
}

// Interview is one generated set of interview questions for a user,
// plus the answers once the interview has been taken.
type Interview struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Role          string    `bson:"role" json:"role"`
	Type          string    `bson:"type" json:"type"`
	Level         string    `bson:"level" json:"level"`
	Company       string    `bson:"company" json:"company"`
	TechStack     []string  `bson:"techStack" json:"techStack"`
	Questions     []string  `bson:"questions" json:"questions"`
	CoverImage    string    `bson:"coverImage" json:"coverImage"`
	Finalized     bool      `bson:"finalized" json:"finalized"`
	FeedbackGiven bool      `bson:"feedbackGiven" json:"feedbackGiven"`
	Answers       []Answer  `bson:"answers,omitempty" json:"answers,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
