package routers

import (
	"github.com/go-chi/chi/v5"

	"prepwise/server/internal/auth"
	"prepwise/server/internal/handlers"
	"prepwise/server/internal/middleware"
	"prepwise/server/internal/models"
)

// InterviewRoutes mounts every data-touching endpoint behind the
// session gate.
func InterviewRoutes(router *chi.Mux, verifier *auth.Verifier, interviewHandler *handlers.InterviewHandler, feedbackHandler *handlers.FeedbackHandler, speechHandler *handlers.SpeechHandler) {
	router.Route("/api/v1/interviews", func(r chi.Router) {
		r.Use(auth.RequireSession(verifier))

		r.With(middleware.ValidateRequest[*models.GenerateRequest]()).Post("/generate", interviewHandler.GenerateHandler)
		r.With(middleware.ValidateRequest[*models.ListInterviewsRequest]()).Post("/get-all-interviews", interviewHandler.ListInterviewsHandler)
		r.With(middleware.ValidateRequest[*models.QuestionsRequest]()).Post("/get-all-questions", interviewHandler.QuestionsHandler)

		r.With(middleware.ValidateRequest[*models.FeedbackRequest]()).Post("/generate-feedback", feedbackHandler.GenerateFeedbackHandler)
		r.With(middleware.ValidateRequest[*models.FeedbackLookupRequest]()).Post("/get-feedback", feedbackHandler.GetFeedbackHandler)
		r.Get("/get-given-interviews", feedbackHandler.GivenInterviewsHandler)

		r.Post("/speech-to-text", speechHandler.SpeechToTextHandler)
	})
}
