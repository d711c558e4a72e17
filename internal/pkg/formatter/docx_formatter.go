package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
	"github.com/zant/accident-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(report *entity.EWYPReport) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(docTitle)

	subtitlePar := doc.AddParagraph()
	subtitlePar.SetStyle("Heading2")
	subtitlePar.AddRun().AddText(docSubtitle)

	doc.AddParagraph()

	for _, it := range layoutReport(report) {
		switch it.kind {
		case sectionItem:
			par := doc.AddParagraph()
			par.SetStyle("Heading2")
			par.AddRun().AddText(it.label)
		case subsectionItem:
			par := doc.AddParagraph()
			par.SetStyle("Heading3")
			par.AddRun().AddText(it.label)
		case fieldItem:
			if it.value == "" {
				continue
			}
			par := doc.AddParagraph()
			labelRun := par.AddRun()
			labelRun.Properties().SetBold(true)
			labelRun.AddText(it.label + ": ")
			par.AddRun().AddText(it.value)
		case checkboxItem:
			mark := "[ ] "
			if it.checked {
				mark = "[X] "
			}
			doc.AddParagraph().AddRun().AddText(mark + it.label)
		case textItem:
			if it.value == "" {
				continue
			}
			doc.AddParagraph().AddRun().AddText(it.value)
		case spacerItem:
			doc.AddParagraph()
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
