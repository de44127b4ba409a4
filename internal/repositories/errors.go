package repositories

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInterviewNotFound = errors.New("interview not found")
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrDuplicateEmail    = errors.New("email already registered")
)
