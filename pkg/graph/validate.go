package graph

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/coachtree/coachtree/pkg/errors"
)

// validate is a singleton validator instance for struct-tag checks.
var validate = validator.New()

// Validate checks a dataset for structural and semantic problems.
//
// Struct-tag validation catches missing required fields and unknown
// connection types; the semantic pass catches duplicate coach ids,
// malformed ids/colors, and datasets with no roots. Connections that
// reference unknown coach ids are deliberately NOT an error: the layout
// pipeline silently drops them at every membership check.
func (d *Dataset) Validate() error {
	if err := validate.Struct(d); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidDataset, formatValidationError(err), "dataset failed validation")
	}

	seen := make(map[string]bool, len(d.Coaches))
	roots := 0
	for _, c := range d.Coaches {
		if err := apperrors.ValidateCoachID(c.ID); err != nil {
			return err
		}
		if seen[c.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidDataset, "duplicate coach id: %s", c.ID)
		}
		seen[c.ID] = true
		if c.IsCurrentHC {
			roots++
		}
	}
	if roots == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidDataset, "dataset has no current head coaches to anchor the tree")
	}

	for _, conn := range d.Connections {
		if conn.Source == conn.Target {
			return apperrors.New(apperrors.ErrCodeInvalidDataset, "self-loop connection on coach %s", conn.Source)
		}
	}

	for team, color := range d.TeamColors {
		if err := apperrors.ValidateTeamColor(color); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidColor, err, "team %q", team)
		}
	}

	return nil
}

// formatValidationError converts validator errors to a user-friendly form.
// Only the first failure is reported.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must have at least %s entries", field, e.Param())
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
