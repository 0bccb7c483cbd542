// Package service holds the community business logic: feed reads, post and
// reply creation, the like/repost toggles, and counter reconciliation.
package service

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"bridgehead/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// Content limits.
const (
	MaxPostContentLen    = 5000
	MaxCommentContentLen = 2000
	MaxPostMedia         = 10
	MaxCommentMedia      = 4
	maxMediaURLLen       = 2048
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips all markup and returns trimmed plain text.
func sanitizeText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(raw)))
}

// cleanContent sanitizes and length-checks user text.
func cleanContent(raw string, maxLen int) (string, error) {
	content := sanitizeText(raw)
	if content == "" {
		return "", models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxLen {
		return "", models.NewValidationError(fmt.Sprintf("Content too long (max %d characters)", maxLen))
	}
	return content, nil
}

// cleanMedia trims the URLs, drops blanks, and requires absolute http(s) URLs.
func cleanMedia(raw []string, maxItems int) (models.MediaList, error) {
	out := make(models.MediaList, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if len(item) > maxMediaURLLen {
			return nil, models.NewValidationError("Media URL too long")
		}
		u, err := url.ParseRequestURI(item)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, models.NewValidationError(fmt.Sprintf("Invalid media URL: %q", item))
		}
		out = append(out, item)
	}
	if len(out) > maxItems {
		return nil, models.NewValidationError(fmt.Sprintf("Too many media items (max %d)", maxItems))
	}
	return out, nil
}
