package auth

import (
	"fmt"
	"strings"

	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

const (
	maxUsernameLength = 64
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

// ValidateCredentials trims req in place and checks both fields.
// Usernames are case-sensitive and kept as typed.
func ValidateCredentials(req *CredentialsRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	if req.Username == "" || req.Password == "" {
		return fmt.Errorf("%w: username and password required", apperrors.ErrMissingField)
	}
	if len(req.Username) > maxUsernameLength {
		return fmt.Errorf("%w: username cannot exceed %d characters", apperrors.ErrValidation, maxUsernameLength)
	}
	if strings.ContainsAny(req.Username, " \t\r\n") {
		return fmt.Errorf("%w: username cannot contain whitespace", apperrors.ErrValidation)
	}
	if len(req.Password) > maxPasswordLength {
		return fmt.Errorf("%w: password cannot exceed %d bytes", apperrors.ErrValidation, maxPasswordLength)
	}
	return nil
}
