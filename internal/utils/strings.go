package utils

import "strings"

// StripFences removes a Markdown code fence wrapper (```json ... ```)
// from model output. Text without fences is returned trimmed.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	if idx := strings.Index(out, "\n"); idx != -1 {
		out = out[idx+1:]
	} else {
		out = strings.TrimPrefix(out, "```")
	}
	out = strings.TrimSpace(out)
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}

// SplitTechStack turns the form's space-separated tech stack string
// into individual tags.
func SplitTechStack(stack string) []string {
	return strings.Fields(stack)
}

func NormalizeType(interviewType string) string {
	return strings.ToLower(strings.TrimSpace(interviewType))
}

func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
