package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"inkwell/internal/models"
)

// ValidatePostTitle checks that a title is present and within the length
// bound. The bound counts characters, not bytes, so multibyte titles are
// measured the same way the varchar column measures them.
func ValidatePostTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}

	if utf8.RuneCountInString(title) > models.MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", models.MaxTitleLen)
	}

	return nil
}

// ValidatePostContent checks that post content is present.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}

	return nil
}
