package assistant

import (
	"strings"

	"github.com/zant/accident-backend/internal/entity"
)

// Calculator evaluates the catalog presence predicates over a report draft.
// It is pure and safe for concurrent use; the catalog is read-only.
type Calculator struct {
	catalog []entity.RequiredField
}

func NewCalculator(catalog []entity.RequiredField) *Calculator {
	return &Calculator{catalog: catalog}
}

func (c *Calculator) Catalog() []entity.RequiredField {
	return c.catalog
}

// MissingFields returns the labels of mandatory catalog entries whose
// presence predicate fails, preserving catalog order.
func (c *Calculator) MissingFields(report *entity.AccidentReport) []string {
	missing := []string{}
	for _, field := range c.catalog {
		if !field.Mandatory {
			continue
		}
		if !fieldPresent(report, field.Code) {
			missing = append(missing, field.Label)
		}
	}
	return missing
}

// Progress converts a missing-field count into a completion percentage over
// the mandatory entries of the catalog.
func (c *Calculator) Progress(missingCount int) float64 {
	mandatory := 0
	for _, field := range c.catalog {
		if field.Mandatory {
			mandatory++
		}
	}
	if mandatory == 0 {
		return 100
	}
	return float64(mandatory-missingCount) / float64(mandatory) * 100
}

// Evaluate computes both derived values in one pass.
func (c *Calculator) Evaluate(report *entity.AccidentReport) ([]string, float64) {
	missing := c.MissingFields(report)
	return missing, c.Progress(len(missing))
}

// fieldPresent resolves a catalog code against the draft. Unknown codes are
// reported as absent so uncollected data is never hidden from the user.
func fieldPresent(report *entity.AccidentReport, code string) bool {
	if report == nil {
		return false
	}

	switch code {
	case "victimData.firstName":
		return report.VictimData != nil && filled(report.VictimData.FirstName)
	case "victimData.lastName":
		return report.VictimData != nil && filled(report.VictimData.LastName)
	case "victimData.pesel":
		return report.VictimData != nil && filled(report.VictimData.Pesel)
	case "victimData.address":
		return report.VictimData != nil && filled(report.VictimData.Address)
	case "businessData.name":
		return report.BusinessData != nil && filled(report.BusinessData.Name)
	case "businessData.nip":
		return report.BusinessData != nil && filled(report.BusinessData.Nip)
	case "businessData.regon":
		return report.BusinessData != nil && filled(report.BusinessData.Regon)
	case "businessData.address":
		return report.BusinessData != nil && filled(report.BusinessData.Address)
	case "accidentData.accidentDateTime":
		return report.AccidentData != nil && report.AccidentData.AccidentDateTime != nil &&
			!report.AccidentData.AccidentDateTime.IsZero()
	case "accidentData.place":
		return report.AccidentData != nil && filled(report.AccidentData.Place)
	case "accidentData.plannedWorkHours":
		return report.AccidentData != nil && filled(report.AccidentData.PlannedWorkHours)
	case "accidentData.activitiesBefore":
		return report.AccidentData != nil && filled(report.AccidentData.ActivitiesBefore)
	case "accidentData.circumstancesAndCauses":
		return report.AccidentData != nil && filled(report.AccidentData.CircumstancesAndCauses)
	case "accidentData.injuries":
		return report.AccidentData != nil && filled(report.AccidentData.Injuries)
	case "accidentData.medicalHelp":
		return report.AccidentData != nil && filled(report.AccidentData.MedicalHelp)
	case "witnesses":
		return len(report.Witnesses) > 0
	case "attorneyData.firstName":
		return report.AttorneyData != nil && filled(report.AttorneyData.FirstName)
	case "attorneyData.lastName":
		return report.AttorneyData != nil && filled(report.AttorneyData.LastName)
	case "attorneyData.address":
		return report.AttorneyData != nil && filled(report.AttorneyData.Address)
	case "requiredDocuments":
		return len(report.RequiredDocuments) > 0
	default:
		return false
	}
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}
