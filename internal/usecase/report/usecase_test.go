package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/usecase/assistant"
	"go.uber.org/zap"
)

type fakeReportRepo struct {
	reports map[string]*entity.EWYPReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*entity.EWYPReport{}}
}

func (f *fakeReportRepo) Create(_ context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReportRepo) Update(_ context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	if _, ok := f.reports[report.ID]; !ok {
		return nil, entity.ErrReportNotFound
	}
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*entity.EWYPReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, entity.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) List(_ context.Context) ([]entity.EWYPReport, error) {
	out := []entity.EWYPReport{}
	for _, report := range f.reports {
		out = append(out, *report)
	}
	return out, nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return entity.ErrReportNotFound
	}
	delete(f.reports, id)
	return nil
}

func newTestUsecase(repo *fakeReportRepo) *ReportUsecase {
	return NewUsecase(repo, assistant.NewCalculator(config.DefaultRequiredFields), zap.NewNop())
}

func TestSubmitAssignsIDAndStatus(t *testing.T) {
	repo := newFakeReportRepo()
	uc := newTestUsecase(repo)

	created, err := uc.Submit(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)

	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, created.Status)
}

func TestSaveDraftStatus(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	created, err := uc.SaveDraft(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusDraft, created.Status)
}

func TestUpdateKeepsSubmittedStatus(t *testing.T) {
	repo := newFakeReportRepo()
	uc := newTestUsecase(repo)

	created, err := uc.Submit(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, &entity.EWYPReport{Status: entity.ReportStatusDraft})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, updated.Status)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdatePromotesDraft(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	created, err := uc.SaveDraft(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, &entity.EWYPReport{Status: entity.ReportStatusSubmitted})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, updated.Status)
}

func TestSubmitByIDPromotesDraft(t *testing.T) {
	repo := newFakeReportRepo()
	uc := newTestUsecase(repo)

	created, err := uc.SaveDraft(context.Background(), &entity.EWYPReport{
		InjuredPerson: &entity.InjuredPerson{FirstName: "Jan", LastName: "Kowalski"},
	})
	require.NoError(t, err)

	submitted, err := uc.SubmitByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, submitted.Status)
	// The body is untouched by the promotion.
	assert.Equal(t, "Jan", submitted.InjuredPerson.FirstName)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, stored.Status)
}

func TestSubmitByIDAlreadySubmitted(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	created, err := uc.Submit(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)

	submitted, err := uc.SubmitByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusSubmitted, submitted.Status)
}

func TestSubmitByIDNotFound(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	_, err := uc.SubmitByID(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, entity.ErrReportNotFound)
}

func TestUpdateInvalidID(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	_, err := uc.Update(context.Background(), "not-a-uuid", &entity.EWYPReport{})
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestGetNotFound(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	_, err := uc.Get(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, entity.ErrReportNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFakeReportRepo()
	uc := newTestUsecase(repo)

	created, err := uc.Submit(context.Background(), &entity.EWYPReport{})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	require.ErrorIs(t, uc.Delete(context.Background(), created.ID), entity.ErrReportNotFound)
}

func TestValidateIncomplete(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	created, err := uc.SaveDraft(context.Background(), &entity.EWYPReport{
		InjuredPerson: &entity.InjuredPerson{FirstName: "Jan", LastName: "Kowalski"},
	})
	require.NoError(t, err)

	result, err := uc.Validate(context.Background(), created.ID)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingFields, "PESEL poszkodowanego")
	assert.Contains(t, result.MissingFields, "Miejsce wypadku")
	assert.NotContains(t, result.MissingFields, "Imię poszkodowanego")
	// Business section is not part of the official form check.
	assert.NotContains(t, result.MissingFields, "NIP działalności")
}

func TestValidateComplete(t *testing.T) {
	uc := newTestUsecase(newFakeReportRepo())

	created, err := uc.Submit(context.Background(), &entity.EWYPReport{
		InjuredPerson: &entity.InjuredPerson{
			FirstName: "Jan",
			LastName:  "Kowalski",
			Pesel:     "12345678901",
			Address:   &entity.Address{Street: "Polna", HouseNumber: "1", City: "Warszawa"},
		},
		AccidentInfo: &entity.AccidentInfo{
			AccidentDate:           "2024-05-12",
			AccidentTime:           "10:00",
			PlaceOfAccident:        "magazyn",
			PlannedWorkStartTime:   "08:00",
			PlannedWorkEndTime:     "16:00",
			InjuriesDescription:    "stłuczenie barku",
			CircumstancesAndCauses: "potknięcie o paletę",
			FirstAidGiven:          true,
			FirstAidFacility:       "SOR Warszawa",
		},
	})
	require.NoError(t, err)

	result, err := uc.Validate(context.Background(), created.ID)
	require.NoError(t, err)

	assert.True(t, result.Valid, "missing: %v", result.MissingFields)
	assert.Empty(t, result.MissingFields)
}
