package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPromptLength is the longest prompt accepted by any entry point.
// Prompts only seed a hash and a keyword scan, so anything longer is
// almost certainly a paste mistake or abuse.
const MaxPromptLength = 4096

// ValidatePrompt validates a text prompt before it enters the pipeline.
//
// Empty prompts are explicitly allowed: both generators define a
// deterministic fallback for them. The validation rejects:
//   - Invalid UTF-8
//   - Control characters other than \n and \t
//   - Prompts longer than MaxPromptLength bytes
func ValidatePrompt(prompt string) error {
	if len(prompt) > MaxPromptLength {
		return New(ErrCodeInvalidPrompt, "prompt too long: %d bytes (max %d)", len(prompt), MaxPromptLength)
	}

	if !utf8.ValidString(prompt) {
		return New(ErrCodeInvalidPrompt, "prompt is not valid UTF-8")
	}

	for _, r := range prompt {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return New(ErrCodeInvalidPrompt, "prompt contains control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
// It prevents path traversal and rejects obviously malformed paths.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No parent-directory traversal sequences
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "output path too long (max 500 characters)")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "output path cannot contain parent directory references")
	}

	return nil
}
