package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrLoginRequired    = errors.New("login required")
	ErrInvalidLogin     = errors.New("invalid email or password")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPlayerNotReady   = errors.New("player not ready")
	ErrNoTrack          = errors.New("no track loaded")
	ErrTrackNotFound    = errors.New("track not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrQuotaExceeded    = errors.New("api quota exceeded")
	ErrNetworkError     = errors.New("network error")
	ErrTimeout          = errors.New("request timeout")
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ChimeError wraps an error with a user-friendly suggestion.
type ChimeError struct {
	Err        error
	Suggestion string
}

func (e *ChimeError) Error() string {
	return e.Err.Error()
}

func (e *ChimeError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ChimeError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var chimeErr *ChimeError
	if errors.As(err, &chimeErr) && chimeErr.Suggestion != "" {
		return chimeErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Authentication errors
	if errors.Is(err, ErrLoginRequired) || errors.Is(err, ErrNotAuthenticated) ||
		strings.Contains(errStr, "not authenticated") {
		return "Run 'chime auth login' to sign in"
	}

	if errors.Is(err, ErrInvalidLogin) {
		return "Check your email and password, or run 'chime auth register' to create an account"
	}

	// Player errors
	if errors.Is(err, ErrPlayerNotReady) || strings.Contains(errStr, "player not ready") {
		return "The player is still starting. Try again in a moment"
	}

	if errors.Is(err, ErrNoTrack) {
		return "Play a track first with 'chime play <query>'"
	}

	// Lookup errors
	if errors.Is(err, ErrTrackNotFound) || strings.Contains(errStr, "video not found") {
		return "The video may have been removed. Try searching again"
	}

	if errors.Is(err, ErrPlaylistNotFound) {
		return "Run 'chime playlist list' to see your playlists"
	}

	// Quota / rate limiting
	if errors.Is(err, ErrQuotaExceeded) || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") {
		return "Too many requests. Wait a moment and try again"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || strings.Contains(errStr, "api key") {
		return "Run 'chime config init' and set youtube.api_key"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
