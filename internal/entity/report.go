package entity

import (
	"strings"
	"time"
)

// PersonData holds identity data of a natural person (victim or attorney).
type PersonData struct {
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Pesel             string `json:"pesel,omitempty"`
	Address           string `json:"address,omitempty"`
	SeriesAndNumberID string `json:"seriesAndNumberId,omitempty"`
}

// BusinessData holds identity data of the non-agricultural business activity.
type BusinessData struct {
	Name    string `json:"name,omitempty"`
	Nip     string `json:"nip,omitempty"`
	Regon   string `json:"regon,omitempty"`
	Address string `json:"address,omitempty"`
}

// DateTime accepts the local-time formats models tend to produce as well
// as RFC 3339, and marshals without a zone offset.
type DateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{
	time.RFC3339,
	dateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return nil
	}

	var lastErr error
	for _, layout := range dateTimeLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			d.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// AccidentData describes the circumstances of the accident itself.
type AccidentData struct {
	AccidentDateTime       *DateTime `json:"accidentDateTime,omitempty"`
	Place                  string    `json:"place,omitempty"`
	PlannedWorkHours       string    `json:"plannedWorkHours,omitempty"`
	ActivitiesBefore       string    `json:"activitiesBefore,omitempty"`
	CircumstancesAndCauses string    `json:"circumstancesAndCauses,omitempty"`
	Injuries               string    `json:"injuries,omitempty"`
	MedicalHelp            string    `json:"medicalHelp,omitempty"`
	MachinesInfo           string    `json:"machinesInfo,omitempty"`
	BhpInfo                string    `json:"bhpInfo,omitempty"`
}

// Witness is a single accident witness.
type Witness struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Address   string `json:"address,omitempty"`
}

// AccidentReport is the draft accumulated by the assistant over a
// conversation. All sub-objects stay nil until the first extraction
// supplies them; leaves are only overwritten by newer non-empty values.
type AccidentReport struct {
	VictimData        *PersonData   `json:"victimData,omitempty"`
	BusinessData      *BusinessData `json:"businessData,omitempty"`
	AccidentData      *AccidentData `json:"accidentData,omitempty"`
	Witnesses         []Witness     `json:"witnesses,omitempty"`
	AttorneyData      *PersonData   `json:"attorneyData,omitempty"`
	RequiredDocuments []string      `json:"requiredDocuments,omitempty"`
}
