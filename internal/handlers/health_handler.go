package handlers

import (
	"context"
	"net/http"
	"time"

	"prepwise/server/internal/llm"
	"prepwise/server/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

type HealthHandler struct {
	provider llm.Provider
	pingDB   func(ctx context.Context) error
}

func NewHealthHandler(provider llm.Provider, pingDB func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		pingDB:   pingDB,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "prepwise",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	// verify AI provider is initialized
	if handler.provider == nil {
		checks["provider"] = ReadinessCheck{
			Status:  "failed",
			Message: "AI provider not initialized",
		}
		allChecksPass = false
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	// verify the database responds
	if handler.pingDB == nil {
		checks["database"] = ReadinessCheck{
			Status:  "failed",
			Message: "Database not initialized",
		}
		allChecksPass = false
	} else {
		ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
		defer cancel()
		if err := handler.pingDB(ctx); err != nil {
			checks["database"] = ReadinessCheck{
				Status:  "failed",
				Message: err.Error(),
			}
			allChecksPass = false
		} else {
			checks["database"] = ReadinessCheck{Status: "ok"}
		}
	}

	response := ReadinessResponse{
		Service: "prepwise",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
