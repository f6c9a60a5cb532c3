package utils

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Size limits
const (
	MaxJSONSize       = 1 * 1024 * 1024 // 1MB - maximum request body
	MaxToolIDLength   = 128
	MaxCategoryLength = 64
	MaxPathLength     = 4096
	MaxParamCount     = 16
)

var (
	// ToolIDPattern allows alphanumeric, hyphens, underscores and dots
	// (service.tool format)
	ToolIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	// CategoryPattern allows lowercase letters, numbers and hyphens
	CategoryPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateString validates string length limits and UTF-8 encoding
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}

	if !utf8.ValidString(value) {
		return fmt.Errorf("%s contains invalid UTF-8", fieldName)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLen)
	}
	return nil
}

// ValidateToolID validates a tool ID field
func ValidateToolID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxToolIDLength, required); err != nil {
		return err
	}
	if id != "" && !ToolIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}
	return nil
}

// ValidateCategory validates a category filter
func ValidateCategory(category string, required bool) error {
	if err := ValidateString(category, "category", 0, MaxCategoryLength, required); err != nil {
		return err
	}
	if category != "" && !CategoryPattern.MatchString(category) {
		return fmt.Errorf("category must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// ValidateParams bounds the shape of tool parameters. String values are
// limited to MaxPathLength since every filesystem parameter is a path, a
// name or a pattern.
func ValidateParams(params map[string]interface{}) error {
	if len(params) > MaxParamCount {
		return fmt.Errorf("too many parameters (maximum %d)", MaxParamCount)
	}
	for key, value := range params {
		s, ok := value.(string)
		if !ok {
			continue
		}
		if err := ValidateString(s, key, 0, MaxPathLength, false); err != nil {
			return err
		}
	}
	return nil
}
