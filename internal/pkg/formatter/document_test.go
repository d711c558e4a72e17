package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/entity"
)

func sampleReport() *entity.EWYPReport {
	return &entity.EWYPReport{
		InjuredPerson: &entity.InjuredPerson{
			Pesel:     "12345678901",
			FirstName: "Jan",
			LastName:  "Kowalski",
			BirthDate: "1980-05-12",
			Address: &entity.Address{
				Street: "Polna", HouseNumber: "1", PostalCode: "00-001", City: "Warszawa", Country: "Polska",
			},
		},
		AccidentInfo: &entity.AccidentInfo{
			AccidentDate:           "2024-05-12",
			AccidentTime:           "10:00",
			PlaceOfAccident:        "magazyn",
			InjuriesDescription:    "stłuczenie barku",
			CircumstancesAndCauses: "potknięcie o paletę",
			FirstAidGiven:          true,
			FirstAidFacility:       "SOR Warszawa",
		},
		Witnesses: []entity.WitnessInfo{
			{FirstName: "Ewa", LastName: "Lis", City: "Warszawa"},
		},
		Attachments: &entity.Attachments{
			HospitalCardCopy:  true,
			HasOtherDocuments: true,
			OtherDocuments:    []string{"notatka służbowa"},
		},
		ResponseDeliveryMethod: entity.DeliveryToPUEAccount,
		Signature: &entity.Signature{
			DeclarationDate: "2024-05-13",
			SignatureName:   "Jan Kowalski",
		},
		Status: entity.ReportStatusSubmitted,
	}
}

func sectionTitles(items []item) []string {
	titles := []string{}
	for _, it := range items {
		if it.kind == sectionItem {
			titles = append(titles, it.label)
		}
	}
	return titles
}

func findField(items []item, label string) (string, bool) {
	for _, it := range items {
		if it.kind == fieldItem && it.label == label {
			return it.value, true
		}
	}
	return "", false
}

func TestLayoutReportSectionOrder(t *testing.T) {
	items := layoutReport(sampleReport())

	assert.Equal(t, []string{
		"Dane osoby poszkodowanej",
		"Informacja o wypadku",
		"Dane świadków wypadku",
		"Załączniki",
		"Sposób odbioru odpowiedzi",
		"Oświadczenie i podpis",
	}, sectionTitles(items))
}

func TestLayoutReportDatesReformatted(t *testing.T) {
	items := layoutReport(sampleReport())

	birthDate, ok := findField(items, "Data urodzenia")
	require.True(t, ok)
	assert.Equal(t, "12/05/1980", birthDate)

	accidentDate, ok := findField(items, "1. Data wypadku")
	require.True(t, ok)
	assert.Equal(t, "12/05/2024", accidentDate)
}

func TestLayoutReportFirstAidFacilityOnlyWhenGiven(t *testing.T) {
	report := sampleReport()
	items := layoutReport(report)
	_, ok := findField(items, "   Nazwa i adres placówki służby zdrowia")
	assert.True(t, ok)

	report.AccidentInfo.FirstAidGiven = false
	items = layoutReport(report)
	_, ok = findField(items, "   Nazwa i adres placówki służby zdrowia")
	assert.False(t, ok)
}

func TestLayoutReportReporterOnlyWhenDifferent(t *testing.T) {
	report := sampleReport()
	report.Reporter = &entity.Reporter{FirstName: "Anna"}

	items := layoutReport(report)
	assert.NotContains(t, sectionTitles(items), "Dane osoby, która zawiadamia o wypadku")

	report.Reporter.IsDifferentFromInjuredPerson = true
	items = layoutReport(report)
	assert.Contains(t, sectionTitles(items), "Dane osoby, która zawiadamia o wypadku")
}

func TestLayoutReportDeliveryMethodText(t *testing.T) {
	items := layoutReport(sampleReport())

	found := false
	for _, it := range items {
		if it.kind == textItem && it.value == "Na konto na Platformie Usług Elektronicznych (PUE ZUS)" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLayoutReportCheckboxes(t *testing.T) {
	items := layoutReport(sampleReport())

	var checked, unchecked int
	for _, it := range items {
		if it.kind == checkboxItem {
			if it.checked {
				checked++
			} else {
				unchecked++
			}
		}
	}
	assert.Equal(t, 2, checked)
	assert.Equal(t, 3, unchecked)
}

func TestFormatDatePassThrough(t *testing.T) {
	assert.Equal(t, "", formatDate(""))
	assert.Equal(t, "maj 2024", formatDate("maj 2024"))
	assert.Equal(t, "12/05/2024", formatDate("2024-05-12"))
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	pdf, err := factory.Create(entity.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, ".pdf", pdf.FileExtension())
	assert.Equal(t, "application/pdf", pdf.ContentType())

	docx, err := factory.Create(entity.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, ".docx", docx.FileExtension())

	_, err = factory.Create(entity.DocumentFormat("xlsx"))
	require.Error(t, err)
}
