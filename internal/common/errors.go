// Package common defines shared constants and sentinel errors used across
// the client layers of PostDesk. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Publish-time errors (no network round-trip).
	ErrValidation       = errors.New("validation error")
	ErrUploadInProgress = errors.New("upload in progress")

	// Upload errors.
	ErrNoFile           = errors.New("no file selected")
	ErrUnsupportedMedia = errors.New("only video files are allowed")
	ErrSigning          = errors.New("failed to get pre-signed URL")
	ErrUpload           = errors.New("upload failed")
	ErrNotReady         = errors.New("upload reference not ready")

	// API errors.
	ErrFetch    = errors.New("fetch failed")
	ErrMutation = errors.New("mutation failed")
	ErrNotFound = errors.New("not found")
)

// MessageCarrier is implemented by errors that hold a message produced by
// the remote side, e.g. the "message" field of an API error body.
type MessageCarrier interface {
	ServerMessage() string
}

// UserMessage returns the text shown to the user for err: the server's
// message when there is one, else the error text, else fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var mc MessageCarrier
	if errors.As(err, &mc) {
		if m := strings.TrimSpace(mc.ServerMessage()); m != "" {
			return m
		}
	}
	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return fallback
}
