package models

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateRequest asks for a new set of interview questions.
type GenerateRequest struct {
	Role      string `json:"role"`
	Type      string `json:"type"`
	Level     string `json:"level"`
	TechStack string `json:"techStack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
	Company   string `json:"company"`
}

// implements the Validator interface
func (r *GenerateRequest) Validate() error {
	if r.Role == "" {
		return &ErrorResponse{Code: "missing_role", Message: "Role field is required"}
	}
	if r.Level == "" {
		return &ErrorResponse{Code: "missing_level", Message: "Level field is required"}
	}
	if strings.TrimSpace(r.TechStack) == "" {
		return &ErrorResponse{Code: "missing_tech_stack", Message: "Tech stack field is required"}
	}
	if r.UserID == "" {
		return &ErrorResponse{Code: "missing_userid", Message: "User id is required"}
	}
	if r.Company == "" {
		return &ErrorResponse{Code: "missing_company", Message: "Company field is required"}
	}
	if r.Amount <= 0 {
		return &ErrorResponse{Code: "invalid_amount", Message: "Amount must be a positive integer"}
	}

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	validTypes := map[string]bool{
		InterviewTypeTechnical:   true,
		InterviewTypeBehavioural: true,
		InterviewTypeMixed:       true,
	}
	if !validTypes[r.Type] {
		return &ErrorResponse{
			Code:    "invalid_type",
			Message: "Type must be one of: technical, behavioural, mixed",
		}
	}

	return nil
}

// FeedbackRequest submits a fully answered interview for grading.
type FeedbackRequest struct {
	Questions   []string `json:"questions"`
	Answers     []Answer `json:"answers"`
	InterviewID string   `json:"interviewId"`
}

func (r *FeedbackRequest) Validate() error {
	if r.InterviewID == "" {
		return &ErrorResponse{Code: "missing_interview_id", Message: "Interview id is required"}
	}
	if len(r.Questions) == 0 {
		return &ErrorResponse{Code: "missing_questions", Message: "Questions field is required"}
	}

	// A re-recorded answer replaces the earlier one for the same index.
	byIndex := make(map[int]Answer, len(r.Answers))
	for _, ans := range r.Answers {
		if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(r.Questions) {
			return &ErrorResponse{
				Code:    "invalid_answer_index",
				Message: fmt.Sprintf("Answer index %d is out of range", ans.QuestionIndex),
			}
		}
		byIndex[ans.QuestionIndex] = ans
	}
	if len(byIndex) != len(r.Questions) {
		return &ErrorResponse{Code: "answer_count_mismatch", Message: "Please answer all questions"}
	}

	deduped := make([]Answer, 0, len(byIndex))
	for _, ans := range byIndex {
		deduped = append(deduped, ans)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].QuestionIndex < deduped[j].QuestionIndex })
	r.Answers = deduped

	return nil
}

// ListInterviewsRequest fetches every interview owned by a user.
type ListInterviewsRequest struct {
	UserID string `json:"userid"`
}

func (r *ListInterviewsRequest) Validate() error {
	if r.UserID == "" {
		return &ErrorResponse{Code: "missing_userid", Message: "User id is required"}
	}
	return nil
}

// QuestionsRequest fetches the question list of one interview.
type QuestionsRequest struct {
	InterviewID string `json:"interviewId"`
}

func (r *QuestionsRequest) Validate() error {
	if r.InterviewID == "" {
		return &ErrorResponse{Code: "missing_interview_id", Message: "Interview id is required"}
	}
	return nil
}

// FeedbackLookupRequest fetches the feedback of one interview.
type FeedbackLookupRequest struct {
	InterviewID string `json:"interviewId"`
}

func (r *FeedbackLookupRequest) Validate() error {
	if r.InterviewID == "" {
		return &ErrorResponse{Code: "missing_interview_id", Message: "Interview id is required"}
	}
	return nil
}
