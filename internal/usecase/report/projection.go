package report

import (
	"strings"
	"time"

	"github.com/zant/accident-backend/internal/entity"
)

// projectReport maps the official form onto the assistant's report shape so
// both flows share one set of presence predicates.
func projectReport(report *entity.EWYPReport) *entity.AccidentReport {
	projection := &entity.AccidentReport{}

	if injured := report.InjuredPerson; injured != nil {
		projection.VictimData = &entity.PersonData{
			FirstName:         injured.FirstName,
			LastName:          injured.LastName,
			Pesel:             injured.Pesel,
			Address:           formatAddress(injured.Address),
			SeriesAndNumberID: strings.TrimSpace(injured.IDDocumentType + " " + injured.IDDocumentNumber),
		}
	}

	if accident := report.AccidentInfo; accident != nil {
		projection.AccidentData = &entity.AccidentData{
			AccidentDateTime:       parseAccidentDateTime(accident.AccidentDate, accident.AccidentTime),
			Place:                  accident.PlaceOfAccident,
			PlannedWorkHours:       formatWorkHours(accident.PlannedWorkStartTime, accident.PlannedWorkEndTime),
			ActivitiesBefore:       accident.CircumstancesAndCauses,
			CircumstancesAndCauses: accident.CircumstancesAndCauses,
			Injuries:               accident.InjuriesDescription,
			MedicalHelp:            accident.FirstAidFacility,
			MachinesInfo:           accident.MachineConditionDescription,
		}
	}

	for _, witness := range report.Witnesses {
		projection.Witnesses = append(projection.Witnesses, entity.Witness{
			FirstName: witness.FirstName,
			LastName:  witness.LastName,
			Address:   formatWitnessAddress(witness),
		})
	}

	return projection
}

func parseAccidentDateTime(date, timeOfDay string) *entity.DateTime {
	if date == "" {
		return nil
	}

	raw := date
	if timeOfDay != "" {
		raw = date + "T" + timeOfDay
	}

	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return &entity.DateTime{Time: parsed}
		}
	}
	return nil
}

func formatWorkHours(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	return strings.TrimSpace(start + " - " + end)
}

func formatAddress(address *entity.Address) string {
	if address == nil {
		return ""
	}

	street := address.Street
	if address.HouseNumber != "" {
		street += " " + address.HouseNumber
	}
	if address.ApartmentNumber != "" {
		street += "/" + address.ApartmentNumber
	}

	parts := []string{}
	for _, part := range []string{street, strings.TrimSpace(address.PostalCode + " " + address.City), address.Country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	return strings.Join(parts, ", ")
}

func formatWitnessAddress(witness entity.WitnessInfo) string {
	return formatAddress(&entity.Address{
		Street:          witness.Street,
		HouseNumber:     witness.HouseNumber,
		ApartmentNumber: witness.ApartmentNumber,
		PostalCode:      witness.PostalCode,
		City:            witness.City,
		Country:         witness.Country,
	})
}
