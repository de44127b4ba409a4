package prompts

import (
	"strings"
	"testing"
)

func TestNewPromptManagerLoadsTemplates(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager failed: %v", err)
	}

	modes := pm.Modes()
	found := map[string]bool{}
	for _, mode := range modes {
		found[mode] = true
	}
	for _, want := range []string{"questions", "feedback"} {
		if !found[want] {
			t.Fatalf("expected mode %s loaded, have %v", want, modes)
		}
	}
}

func TestBuildQuestionsPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager failed: %v", err)
	}

	prompt, err := pm.BuildPrompt("questions", map[string]string{
		"Role":      "Backend Engineer",
		"Level":     "senior",
		"TechStack": "go postgres",
		"Type":      "technical",
		"Amount":    "5",
	})
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	for _, want := range []string{"Backend Engineer", "senior", "go postgres", "technical", "5"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "{{.") {
		t.Fatalf("prompt has unreplaced placeholders:\n%s", prompt)
	}
}

func TestBuildFeedbackPrompt(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager failed: %v", err)
	}

	prompt, err := pm.BuildPrompt("feedback", map[string]string{
		"Questions": `["Q1"]`,
		"Answers":   `["my answer"]`,
	})
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	if !strings.Contains(prompt, `["Q1"]`) || !strings.Contains(prompt, `["my answer"]`) {
		t.Fatalf("prompt missing interpolated data:\n%s", prompt)
	}
	if !strings.Contains(prompt, "areas_for_improvement") {
		t.Fatalf("prompt missing schema description:\n%s", prompt)
	}
}

func TestBuildPromptUnknownMode(t *testing.T) {
	pm, err := NewPromptManager()
	if err != nil {
		t.Fatalf("NewPromptManager failed: %v", err)
	}

	if _, err := pm.BuildPrompt("nope", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
