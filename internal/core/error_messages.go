// Package core error codes reference.
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Error codes are grouped by category:
//
// # XML Errors (XML001-XML099)
//
//	XML001 - Malformed XML: The file could not be parsed as XML, including
//	         documents with no root element
//	         Action: Check the file for unclosed tags or invalid characters
//	         Matched by: KindMalformedInput
//
//	XML002 - Schema violation: The file does not match the feed schema
//	         Action: Review the listed XML errors and correct each one
//	         Matched by: KindSchemaViolation
//
//	XML004 - Schema unavailable: The feed schema could not be loaded
//	         Action: Contact support; the service is misconfigured
//	         Patterns: "load schema"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum size limit
//	          Action: Split the feed into smaller files
//	          Matched by: ErrFileTooLarge
//
//	FILE004 - Missing input: The format or the file was not provided, or the
//	          file is empty
//	          Action: Send both the format and file fields
//	          Matched by: ErrMissingInput
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Unsupported format: No importer exists for the requested format
//	         Action: Use one of the formats listed by /api/formats
//	         Matched by: KindUnsupportedFormat, ErrUnsupportedFormat
//
//	IMP002 - Incomplete job: A job is missing a required field
//	         Action: Add the listed fields to each job
//	         Matched by: KindIncompleteRecord
//
//	IMP003 - System busy: Too many imports in progress
//	         Action: Please wait a moment and try again
//	         Matched by: ErrTooManyImports
//
//	IMP004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Matched by: context.Canceled
//
//	IMP005 - Request timeout: Request timed out
//	         Action: Try a smaller file or check your connection
//	         Matched by: context.DeadlineExceeded
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Matching Order
//
// Typed errors are checked first: ImportError kinds via errors.As, then
// sentinels via errors.Is. Only then are the remaining string patterns matched
// case-insensitively with strings.Contains; the first match wins.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgMalformed = UserMessage{
		Message: "File is not well-formed XML",
		Action:  "Check the file for unclosed tags or invalid characters",
		Code:    "XML001",
	}
	msgSchemaViolation = UserMessage{
		Message: "File is not valid",
		Action:  "Review the listed XML errors and correct each one",
		Code:    "XML002",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum size limit",
		Action:  "Split the feed into smaller files",
		Code:    "FILE001",
	}
	msgMissingInput = UserMessage{
		Message: "Format or file is missing",
		Action:  "Send both the format and file fields",
		Code:    "FILE004",
	}
	msgUnsupportedFormat = UserMessage{
		Message: "Format is not supported",
		Action:  "Use one of the formats listed by /api/formats",
		Code:    "IMP001",
	}
	msgIncomplete = UserMessage{
		Message: "A job is missing required fields",
		Action:  "Add the listed fields to each job",
		Code:    "IMP002",
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other imports",
		Action:  "Please wait a moment and try again",
		Code:    "IMP003",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "IMP004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "IMP005",
	}
)

// kindMessages maps each failure kind to its user message.
var kindMessages = map[FailureKind]UserMessage{
	KindMalformedInput:    msgMalformed,
	KindSchemaViolation:   msgSchemaViolation,
	KindIncompleteRecord:  msgIncomplete,
	KindUnsupportedFormat: msgUnsupportedFormat,
}

// sentinelMessages is checked in order with errors.Is.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrMissingInput, msgMissingInput},
	{ErrUnsupportedFormat, msgUnsupportedFormat},
	{ErrTooManyImports, msgBusy},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that carry no type. The first matching pattern wins.
var errorPatterns = []errorPattern{
	{
		pattern: "load schema",
		msg: UserMessage{
			Message: "The feed schema could not be loaded",
			Action:  "Contact support; the service is misconfigured",
			Code:    "XML004",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000). Support staff
// should check application logs for the original error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := registry.Parse("xml-unknown", data)
//	msg := MapError(err)
//	// msg.Code == "IMP001"
//	// msg.Message == "Format is not supported"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if ie, ok := AsImportError(err); ok {
		if msg, ok := kindMessages[ie.Kind]; ok {
			return msg
		}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
