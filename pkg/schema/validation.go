package schema

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateModel checks a compliance model before it is stored or used.
func ValidateModel(m *ComplianceModel) error {
	if m == nil {
		return errors.New("model is nil")
	}
	if err := structValidator().Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return err
	}

	for groupID, group := range m.Requirements.Groups {
		if !slices.Contains(GroupIDs, groupID) {
			return fmt.Errorf("unknown group %q (expected one of %v)", groupID, GroupIDs)
		}
		for itemID := range group.Items {
			if !slices.Contains(ItemIDs, itemID) {
				return fmt.Errorf("group %s: unknown item %q (expected one of %v)", groupID, itemID, ItemIDs)
			}
		}
	}
	return nil
}

// ValidateClassification reports whether c is one of the three known buckets.
func ValidateClassification(c Classification) error {
	switch c {
	case ClassificationMet, ClassificationDoubtful, ClassificationMissing:
		return nil
	default:
		return fmt.Errorf("invalid classification: %s", c)
	}
}

// ValidateStatus reports whether s is APROVADO or REPROVADO.
func ValidateStatus(s Status) error {
	switch s {
	case StatusApproved, StatusRejected:
		return nil
	default:
		return fmt.Errorf("invalid status: %s", s)
	}
}
