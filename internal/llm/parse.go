package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"prepwise/server/internal/models"
	"prepwise/server/internal/utils"
)

// ErrMalformedResponse marks model output that does not match the
// schema the prompt demanded. Callers branch on it with errors.Is.
var ErrMalformedResponse = errors.New("malformed model response")

// ParseQuestions validates model output as a plain JSON array of
// question strings, stripping a code fence wrapper first.
func ParseQuestions(raw string) ([]string, error) {
	cleaned := utils.StripFences(raw)

	var questions []string
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrMalformedResponse)
	}
	for i, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, fmt.Errorf("%w: blank question at index %d", ErrMalformedResponse, i)
		}
	}
	return questions, nil
}

// ParseFeedback validates model output against the fixed feedback
// schema: an "overall" block plus one "question_N" block per question,
// 1-indexed, each with strengths, areas_for_improvement and a score
// out of 100.
func ParseFeedback(raw string, questionCount int) (*models.Feedback, error) {
	cleaned := utils.StripFences(raw)

	var blocks map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &blocks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	overallRaw, ok := blocks["overall"]
	if !ok {
		return nil, fmt.Errorf("%w: missing overall block", ErrMalformedResponse)
	}

	fb := &models.Feedback{}
	if err := decodeBlock(overallRaw, "overall", &fb.Overall); err != nil {
		return nil, err
	}

	fb.Questions = make([]models.FeedbackBlock, 0, questionCount)
	for i := 1; i <= questionCount; i++ {
		key := fmt.Sprintf("question_%d", i)
		blockRaw, ok := blocks[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s block", ErrMalformedResponse, key)
		}
		var block models.FeedbackBlock
		if err := decodeBlock(blockRaw, key, &block); err != nil {
			return nil, err
		}
		fb.Questions = append(fb.Questions, block)
	}

	return fb, nil
}

func decodeBlock(raw json.RawMessage, name string, out *models.FeedbackBlock) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s block: %v", ErrMalformedResponse, name, err)
	}
	if out.Score < 0 || out.Score > 100 {
		return fmt.Errorf("%w: %s score %d out of range", ErrMalformedResponse, name, out.Score)
	}
	return nil
}
