// Package chat holds the placeholder assistant. There is no model behind it:
// replies are fabricated from the question.
package chat

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyQuery = errors.New("query is required")

// MockReply returns the canned answer for a question. Blank questions are
// rejected; anything else is echoed as typed.
func MockReply(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}
	return fmt.Sprintf(`Mock reply for: "%s" (no backend connected)`, query), nil
}
