package errors

import "strings"

// ValidateDocumentID validates a stored document identifier.
// IDs end up in file names and Redis keys, so the rules are conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - Only letters, digits, '-', '_' and '.'
//   - No leading '.' (hidden files, "." and "..")
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "document ID too long (max 128 characters)")
	}

	if strings.HasPrefix(id, ".") {
		return New(ErrCodeInvalidInput, "document ID cannot start with '.'")
	}

	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return New(ErrCodeInvalidInput, "document ID contains invalid character %q", r)
		}
	}

	return nil
}
