package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "parsing error type",
			errType:  ErrTypeParsing,
			expected: "PARSING",
		},
		{
			name:     "data error type",
			errType:  ErrTypeData,
			expected: "DATA",
		},
		{
			name:     "storage error type",
			errType:  ErrTypeStorage,
			expected: "STORAGE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "summary table is empty",
				Cause:   nil,
			},
			wantMessage: "[VALIDATION] summary table is empty",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "failed to parse scores table",
				Cause:   fmt.Errorf("record on line 12: wrong number of fields"),
			},
			wantMessage: "[PARSING] failed to parse scores table: record on line 12: wrong number of fields",
		},
		{
			name: "error with wrapped cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "failed to write report",
				Cause:   errors.New("disk full"),
			},
			wantMessage: "[STORAGE] failed to write report: disk full",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type:    ErrTypeData,
				Message: "",
				Cause:   nil,
			},
			wantMessage: "[DATA] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Error()
			assert.Equal(t, tt.wantMessage, got)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")

	withCause := &AppError{Type: ErrTypeParsing, Message: "parse failed", Cause: cause}
	assert.Equal(t, cause, withCause.Unwrap())
	assert.True(t, errors.Is(withCause, cause))

	withoutCause := &AppError{Type: ErrTypeConfig, Message: "bad config"}
	assert.Nil(t, withoutCause.Unwrap())
}

func TestAppError_ErrorsAs(t *testing.T) {
	err := fmt.Errorf("loading season: %w", NewParsingError("bad header", errors.New("missing column")))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
	assert.Equal(t, "bad header", appErr.Message)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("unreadable row", nil).
		WithContext("file", "scores.csv").
		WithContext("line", 42)

	require.NotNil(t, err.Context)
	assert.Equal(t, "scores.csv", err.Context["file"])
	assert.Equal(t, 42, err.Context["line"])

	// context starts nil on a hand-built error and is created on demand
	bare := &AppError{Type: ErrTypeData, Message: "x"}
	bare.WithContext("game", 101)
	assert.Equal(t, 101, bare.Context["game"])
}

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{
			name:     "parsing",
			err:      NewParsingError("cannot parse games.csv", cause),
			wantType: ErrTypeParsing,
			wantMsg:  "cannot parse games.csv",
		},
		{
			name:     "data",
			err:      NewDataError("clue group has no donor row", nil),
			wantType: ErrTypeData,
			wantMsg:  "clue group has no donor row",
		},
		{
			name:     "storage",
			err:      NewStorageError("cannot create reports directory", cause),
			wantType: ErrTypeStorage,
			wantMsg:  "cannot create reports directory",
		},
		{
			name:     "validation",
			err:      NewAppValidationError("game number must be positive"),
			wantType: ErrTypeValidation,
			wantMsg:  "game number must be positive",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("episodes table"),
			wantType: ErrTypeNotFound,
			wantMsg:  "episodes table not found",
		},
		{
			name:     "config",
			err:      NewConfigError("invalid log level", cause),
			wantType: ErrTypeConfig,
			wantMsg:  "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}
