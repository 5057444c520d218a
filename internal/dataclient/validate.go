package dataclient

import (
	"fmt"
	"strings"

	"github.com/mrlokans/qotd/internal/entities"
)

func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "must not be empty"}
	}
	return nil
}

func ValidateSeriousnessLevel(level int) error {
	if level < entities.MinSeriousnessLevel || level > entities.MaxSeriousnessLevel {
		return &ValidationError{
			Field:   "seriousnessLevel",
			Message: fmt.Sprintf("must be between %d and %d", entities.MinSeriousnessLevel, entities.MaxSeriousnessLevel),
		}
	}
	return nil
}

func ValidateCreate(input CreateQuestionInput) error {
	if err := ValidateText(input.Text); err != nil {
		return err
	}
	return ValidateSeriousnessLevel(input.SeriousnessLevel)
}

func ValidateUpdate(input UpdateQuestionInput) error {
	if input.Text != nil {
		if err := ValidateText(*input.Text); err != nil {
			return err
		}
	}
	if input.SeriousnessLevel != nil {
		if err := ValidateSeriousnessLevel(*input.SeriousnessLevel); err != nil {
			return err
		}
	}
	return nil
}
