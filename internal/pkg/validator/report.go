package validator

import (
	"fmt"

	"github.com/zant/accident-backend/internal/entity"
)

// Validator validates inbound report payloads
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmit checks the minimum a notification must carry before it can
// be accepted as submitted. Drafts are exempt; they may be arbitrarily
// incomplete.
func (v *Validator) ValidateSubmit(report *entity.EWYPReport) error {
	if report == nil {
		return fmt.Errorf("%w: report", entity.ErrMissingField)
	}
	if report.InjuredPerson == nil {
		return fmt.Errorf("%w: injuredPerson", entity.ErrMissingField)
	}
	if report.InjuredPerson.FirstName == "" {
		return fmt.Errorf("%w: injuredPerson.firstName", entity.ErrMissingField)
	}
	if report.InjuredPerson.LastName == "" {
		return fmt.Errorf("%w: injuredPerson.lastName", entity.ErrMissingField)
	}
	if report.AccidentInfo == nil {
		return fmt.Errorf("%w: accidentInfo", entity.ErrMissingField)
	}

	return nil
}

// ValidateDraft checks a draft payload.
func (v *Validator) ValidateDraft(report *entity.EWYPReport) error {
	if report == nil {
		return fmt.Errorf("%w: report", entity.ErrMissingField)
	}
	return nil
}

// ParseDocumentFormat resolves the ?format= query value.
func (v *Validator) ParseDocumentFormat(raw string) (entity.DocumentFormat, error) {
	switch entity.DocumentFormat(raw) {
	case entity.FormatPDF:
		return entity.FormatPDF, nil
	case entity.FormatDOCX:
		return entity.FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: format %q (allowed: pdf, docx)", entity.ErrInvalidFormat, raw)
	}
}
