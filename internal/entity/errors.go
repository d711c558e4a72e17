package entity

import "errors"

// Domain errors
var (
	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")

	// Report errors
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidReport  = errors.New("invalid report data")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
