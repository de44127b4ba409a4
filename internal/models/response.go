package models

// uniform error responses
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// ErrorEnvelope wraps an error response in the {success:false, error}
// shape every failure body uses.
type ErrorEnvelope struct {
	Success bool          `json:"success"`
	Error   ErrorResponse `json:"error"`
}

// SuccessResponse is the bare success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DataResponse carries a success flag plus the fetched payload.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// FeedbackResponse is returned by generate-feedback.
type FeedbackResponse struct {
	Success  bool      `json:"success"`
	Feedback *Feedback `json:"feedback"`
}

// GenerationResponse is what an LLM provider returns for one prompt.
type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}

// additional information about a generation call
type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}
