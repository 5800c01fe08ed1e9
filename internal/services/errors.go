package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classify upload and sync failures so callers can react with
// errors.Is instead of string matching.
var (
	// ErrRateLimited marks a rate-limit signal from the hosting service. It
	// is the only classification the retry decorator acts on.
	ErrRateLimited = errors.New("rate limited")
	// ErrModerated marks an upload rejected because of its display name.
	ErrModerated = errors.New("name moderated")
	// ErrConfiguration marks invalid or contradictory settings; it always
	// aborts the whole pass.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransport marks malformed responses, missing fields, and other
	// wire-level faults.
	ErrTransport = errors.New("transport error")
	// ErrResolution marks an upload that was accepted but never confirmed
	// within the polling bound. The remote side may still complete it later.
	ErrResolution = errors.New("asset resolution failed")
	// ErrValidation marks bad per-input data discovered before any upload.
	ErrValidation = errors.New("validation error")
)

// Wrap tags err with a classification marker and contextual detail. The
// marker should be one of the package sentinels; a nil marker is treated as
// ErrTransport.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error must abort the whole sync pass rather
// than just the offending input.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
