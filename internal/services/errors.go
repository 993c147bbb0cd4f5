package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration           = errors.New("configuration error")
	ErrServerUnavailable       = errors.New("media server unavailable")
	ErrNodeMetadataUnavailable = errors.New("node metadata unavailable")
	ErrPathResolution          = errors.New("path resolution failed")
	ErrFolderMatch             = errors.New("no matching folder")
	ErrArtworkUnavailable      = errors.New("artwork unavailable")
	ErrTransfer                = errors.New("transfer failed")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransfer
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the whole run rather than a single
// node of the library tree.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrServerUnavailable)
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
