package items

import (
	"fmt"
	"strings"

	"github.com/xyz-asif/trackback/internal/models"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

const (
	maxNameLength  = 120
	maxFieldLength = 1000
)

// ValidateReport trims req in place and returns the parsed kind.
func ValidateReport(req *ReportRequest) (models.Kind, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)
	req.Contact = strings.TrimSpace(req.Contact)

	kind, err := models.ParseKind(req.Kind)
	if err != nil {
		return "", err
	}
	if req.Name == "" {
		return "", fmt.Errorf("%w: name required", apperrors.ErrMissingField)
	}
	if len(req.Name) > maxNameLength {
		return "", fmt.Errorf("%w: name cannot exceed %d characters", apperrors.ErrValidation, maxNameLength)
	}
	for field, v := range map[string]string{"description": req.Description, "location": req.Location, "contact": req.Contact} {
		if len(v) > maxFieldLength {
			return "", fmt.Errorf("%w: %s cannot exceed %d characters", apperrors.ErrValidation, field, maxFieldLength)
		}
	}
	if len(req.ID) > 64 {
		return "", fmt.Errorf("%w: id too long", apperrors.ErrValidation)
	}
	return kind, nil
}
