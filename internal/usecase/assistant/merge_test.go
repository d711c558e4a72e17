package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/entity"
)

func rawFields(t *testing.T, pairs map[string]string) map[string]json.RawMessage {
	t.Helper()
	fields := make(map[string]json.RawMessage, len(pairs))
	for key, value := range pairs {
		fields[key] = json.RawMessage(value)
	}
	return fields
}

func TestMergeKeepsEarlierLeaves(t *testing.T) {
	report := &entity.AccidentReport{
		VictimData: &entity.PersonData{FirstName: "Jan", LastName: "Kowalski"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"victimData": `{"pesel": "12345678901"}`,
	}))

	assert.Empty(t, rejected)
	require.NotNil(t, merged.VictimData)
	assert.Equal(t, "Jan", merged.VictimData.FirstName)
	assert.Equal(t, "Kowalski", merged.VictimData.LastName)
	assert.Equal(t, "12345678901", merged.VictimData.Pesel)
}

func TestMergeNullDoesNotErase(t *testing.T) {
	report := &entity.AccidentReport{
		VictimData: &entity.PersonData{FirstName: "Jan"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"victimData": `{"firstName": null, "lastName": "Nowak"}`,
	}))

	assert.Empty(t, rejected)
	assert.Equal(t, "Jan", merged.VictimData.FirstName)
	assert.Equal(t, "Nowak", merged.VictimData.LastName)
}

func TestMergeEmptyStringDoesNotErase(t *testing.T) {
	report := &entity.AccidentReport{
		BusinessData: &entity.BusinessData{Nip: "1234567890"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"businessData": `{"nip": "", "name": "Firma"}`,
	}))

	assert.Empty(t, rejected)
	assert.Equal(t, "1234567890", merged.BusinessData.Nip)
	assert.Equal(t, "Firma", merged.BusinessData.Name)
}

func TestMergeOverwritesWithNewValue(t *testing.T) {
	report := &entity.AccidentReport{
		AccidentData: &entity.AccidentData{Place: "hala"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"accidentData": `{"place": "magazyn przy ul. Polnej"}`,
	}))

	assert.Empty(t, rejected)
	assert.Equal(t, "magazyn przy ul. Polnej", merged.AccidentData.Place)
}

func TestMergeCreatesSection(t *testing.T) {
	merged, rejected := mergeExtractedFields(&entity.AccidentReport{}, rawFields(t, map[string]string{
		"victimData":   `{"firstName": "Jan"}`,
		"accidentData": `{"place": "magazyn", "accidentDateTime": "2024-05-12T10:00:00"}`,
	}))

	assert.Empty(t, rejected)
	require.NotNil(t, merged.VictimData)
	assert.Equal(t, "Jan", merged.VictimData.FirstName)
	require.NotNil(t, merged.AccidentData)
	require.NotNil(t, merged.AccidentData.AccidentDateTime)
	assert.Equal(t, 2024, merged.AccidentData.AccidentDateTime.Year())
}

func TestMergeReplacesArraysWholesale(t *testing.T) {
	report := &entity.AccidentReport{
		Witnesses: []entity.Witness{{FirstName: "Adam"}},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"witnesses": `[{"firstName": "Ewa", "lastName": "Lis"}]`,
	}))

	assert.Empty(t, rejected)
	require.Len(t, merged.Witnesses, 1)
	assert.Equal(t, "Ewa", merged.Witnesses[0].FirstName)
}

func TestMergeEmptyArrayDoesNotErase(t *testing.T) {
	report := &entity.AccidentReport{
		RequiredDocuments: []string{"karta wypadku"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"requiredDocuments": `[]`,
	}))

	assert.Empty(t, rejected)
	assert.Equal(t, []string{"karta wypadku"}, merged.RequiredDocuments)
}

func TestMergeRejectsMistypedSlot(t *testing.T) {
	report := &entity.AccidentReport{
		VictimData: &entity.PersonData{FirstName: "Jan"},
	}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"victimData":   `"Jan Kowalski"`,
		"businessData": `{"nip": "1234567890"}`,
	}))

	assert.Equal(t, []string{"victimData"}, rejected)
	// The bad slot is dropped, the good one still lands.
	assert.Equal(t, "Jan", merged.VictimData.FirstName)
	require.NotNil(t, merged.BusinessData)
	assert.Equal(t, "1234567890", merged.BusinessData.Nip)
}

func TestMergeIgnoresUnknownSlot(t *testing.T) {
	report := &entity.AccidentReport{}

	merged, rejected := mergeExtractedFields(report, rawFields(t, map[string]string{
		"weatherData": `{"sky": "clear"}`,
	}))

	assert.Empty(t, rejected)
	assert.Equal(t, &entity.AccidentReport{}, merged)
}

func TestMergeNoFields(t *testing.T) {
	report := &entity.AccidentReport{VictimData: &entity.PersonData{FirstName: "Jan"}}

	merged, rejected := mergeExtractedFields(report, nil)

	assert.Empty(t, rejected)
	assert.Same(t, report, merged)
}
