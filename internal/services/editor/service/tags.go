package service

import (
	"context"
	"regexp"

	pstrings "locbridge/internal/platform/strings"
	"locbridge/internal/platform/validate"
	"locbridge/internal/services/editor/domain"
)

var (
	// opening or self-closing tags, {var}, %s and %d
	xmlTags = regexp.MustCompile(`<[a-zA-Z0-9_\-]+[^>]*>|\{[^}]+\}|%[sd]`)
	// [tag ...] but not [/tag]
	bracketTags = regexp.MustCompile(`\[[a-zA-Z0-9_\-]+[^\]]*\]`)
)

// Tags returns the distinct placeholders of in.Text in first-seen order; closing tags are left out
func (s *Service) Tags(_ context.Context, in domain.TagsInput) ([]string, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return ExtractTags(in.Text, in.Style), nil
}

// ExtractTags is Tags without validation; an unknown style is treated as xml
func ExtractTags(text, style string) []string {
	re := xmlTags
	if style == domain.TagsBracket {
		re = bracketTags
	}
	return pstrings.Unique(re.FindAllString(text, -1))
}
