package formatter

import (
	"fmt"

	"github.com/zant/accident-backend/internal/entity"
)

const (
	docTitle    = "EWYP"
	docSubtitle = "Zawiadomienie o wypadku"

	declarationText = "Oświadczam, że dane zawarte w zawiadomieniu podaję zgodnie z prawdą, " +
		"co potwierdzam złożonym podpisem."
)

type Formatter interface {
	Format(report *entity.EWYPReport) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.DocumentFormat) (Formatter, error) {
	switch format {
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
