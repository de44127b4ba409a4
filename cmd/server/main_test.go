package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prepwise/server/internal/auth"
	"prepwise/server/internal/handlers"
	"prepwise/server/internal/llm"
	"prepwise/server/internal/models"
	"prepwise/server/internal/prompts"
)

type fakeProvider struct{}

func (fakeProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{}, nil
}
func (fakeProvider) GetProviderName() string { return "fake" }

type fakePrompt struct{}

func (fakePrompt) BuildPrompt(string, map[string]string) (string, error) { return "prompt", nil }

var (
	_ llm.Provider           = (*fakeProvider)(nil)
	_ prompts.PromptProvider = (*fakePrompt)(nil)
)

func TestRegisterRoutes(t *testing.T) {
	logger := zap.NewNop()
	verifier := auth.NewVerifier("test-secret", time.Hour)

	authHandler := handlers.NewAuthHandler(nil, verifier, false, logger)
	interviewHandler := handlers.NewInterviewHandler(fakeProvider{}, fakePrompt{}, nil, logger)
	feedbackHandler := handlers.NewFeedbackHandler(fakeProvider{}, fakePrompt{}, nil, nil, logger)
	speechHandler := handlers.NewSpeechHandler(nil, logger)
	healthHandler := handlers.NewHealthHandler(fakeProvider{}, nil)

	router := chi.NewRouter()
	registerRoutes(router, authHandler, interviewHandler, feedbackHandler, speechHandler, healthHandler, verifier)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /healthz to be registered, got %d", rec.Code)
	}

	// Gated routes must exist and refuse an unauthenticated caller.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/interviews/generate", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected gated /generate to be registered, got %d", rec.Code)
	}
}
