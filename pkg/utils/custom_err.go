package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrMissingCriticalInfo    = errors.New("missing critical information: destination or budget")
	ErrNoSearchResults        = errors.New("no travel options found matching your criteria")
	ErrProviderUnavailable    = errors.New("provider unavailable")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from AI provider")
	ErrIntentExtractionFailed = errors.New("could not extract a travel request from the message")
)
