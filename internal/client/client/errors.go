package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/goccy/go-json"
)

var (
	ErrMissingID    = errors.New("post ID is required")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
)

// APIError is a non-success HTTP response from the API. It unwraps to the
// taxonomy sentinel of the failed operation (common.ErrFetch,
// common.ErrMutation or common.ErrSigning) and additionally to
// common.ErrNotFound on 404 or ErrUnauthorized on 401/403.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v: status %d: %s", e.Op, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %v: status %d", e.Op, e.Kind, e.StatusCode)
}

func (e *APIError) Unwrap() []error {
	errs := []error{e.Kind}
	switch e.StatusCode {
	case http.StatusNotFound:
		errs = append(errs, common.ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		errs = append(errs, ErrUnauthorized)
	}
	return errs
}

// ServerMessage implements common.MessageCarrier.
func (e *APIError) ServerMessage() string { return e.Message }

// serverMessage extracts a human message from an error body. It understands
// {"message"}, {"detail"} and {"error"} shapes, and field-error maps such as
// {"title": ["This field is required."]}.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			parts = append(parts, k+": "+v)
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					parts = append(parts, k+": "+s)
				}
			}
		}
	}
	return strings.Join(parts, "; ")
}
