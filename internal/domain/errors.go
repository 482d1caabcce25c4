package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by the service layer matches exactly one
// of these with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrExternalUnavailable = errors.New("external service unavailable")
	ErrStorage             = errors.New("storage error")
	ErrUnauthorized        = errors.New("unauthorized")
)

var (
	// ErrUnallowedChars indicates a track label contains a disallowed character
	ErrUnallowedChars = fmt.Errorf("%w: track contains unallowed characters", ErrInvalidInput)

	// ErrVideoIDRequired indicates a content request without a video id
	ErrVideoIDRequired = fmt.Errorf("%w: video ID is required", ErrInvalidInput)

	// ErrContentNotFound indicates a content was not found
	ErrContentNotFound = fmt.Errorf("content %w", ErrNotFound)

	// ErrTrackNotFound indicates a track was not found
	ErrTrackNotFound = fmt.Errorf("track %w", ErrNotFound)

	// ErrUserNotFound indicates a user was not found
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrVideoNotFound indicates the video host has no video with the requested id
	ErrVideoNotFound = fmt.Errorf("video %w", ErrNotFound)

	// ErrContentExists indicates a content with the same video id already exists
	ErrContentExists = fmt.Errorf("%w: content already exists", ErrConflict)

	// ErrTrackExists indicates a track with the same name already exists
	ErrTrackExists = fmt.Errorf("%w: track already exists", ErrConflict)

	// ErrUserExists indicates a user with the same name or email already exists
	ErrUserExists = fmt.Errorf("%w: user already exists", ErrConflict)

	// ErrQuotaExceeded indicates the video API quota is spent
	ErrQuotaExceeded = fmt.Errorf("%w: quota exceeded", ErrExternalUnavailable)

	// ErrRateLimitExceeded indicates the video API throttled the request
	ErrRateLimitExceeded = fmt.Errorf("%w: rate limit exceeded", ErrExternalUnavailable)

	// ErrInvalidCredentials indicates an unknown email or a wrong password
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
)

// ContentError represents an error related to content operations
type ContentError struct {
	ContentID int64
	Op        string
	Err       error
}

func (e *ContentError) Error() string {
	if e.ContentID == 0 {
		return fmt.Sprintf("content operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("content operation %s failed for content %d: %v", e.Op, e.ContentID, e.Err)
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

// TrackError represents an error related to track operations
type TrackError struct {
	TrackID int64
	Op      string
	Err     error
}

func (e *TrackError) Error() string {
	if e.TrackID == 0 {
		return fmt.Sprintf("track operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("track operation %s failed for track %d: %v", e.Op, e.TrackID, e.Err)
}

func (e *TrackError) Unwrap() error {
	return e.Err
}

// StorageError represents a storage failure that is not a uniqueness or
// missing-row condition. It matches ErrStorage.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Violation is one failed rule on one input field
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in a request. It matches
// ErrInvalidInput.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
