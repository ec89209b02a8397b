package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/entity"
)

func TestLeadRecordRepositorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lead_records")).
		WithArgs(4321, "Lead_4321", "33", "Spain", "Analytics", "secured").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewLeadRecordRepository(db)
	record := entity.NewSecuredRecord(entity.Lead{ID: 4321, Name: "Lead_4321"}, "33", "Spain", "Analytics")

	require.NoError(t, repo.Save(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRecordRepositorySaveStoresNullDemographics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lead_records")).
		WithArgs(4321, "Lead_4321", nil, nil, nil, "no_response").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewLeadRecordRepository(db)
	record := entity.NewStatusRecord(entity.Lead{ID: 4321, Name: "Lead_4321"}, entity.StatusNoResponse)

	require.NoError(t, repo.Save(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRecordRepositorySaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lead_records")).
		WillReturnError(errors.New("connection reset"))

	repo := NewLeadRecordRepository(db)
	err = repo.Save(context.Background(), entity.NewStatusRecord(entity.Lead{ID: 1, Name: "x"}, entity.StatusFollowedUp))

	assert.ErrorContains(t, err, "connection reset")
}

func TestLeadRecordRepositoryEnsureSchemaAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS lead_records")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM lead_records WHERE status = $1")).
		WithArgs("secured").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewLeadRecordRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	count, err := repo.CountByStatus(context.Background(), entity.StatusSecured)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingRepo struct{ err error }

func (f failingRepo) Save(context.Context, *entity.LeadRecord) error { return f.err }

func TestMultiLeadRecordRepositoryStopsAtFirstError(t *testing.T) {
	ctx := context.Background()
	csvRepo, err := NewCSVLeadRecordRepository(t.TempDir() + "/leads.csv")
	require.NoError(t, err)

	boom := errors.New("boom")
	multi := NewMultiLeadRecordRepository(csvRepo, failingRepo{err: boom})

	err = multi.Save(ctx, entity.NewStatusRecord(entity.Lead{ID: 1500, Name: "Lead_1500"}, entity.StatusNoResponse))
	assert.ErrorIs(t, err, boom)

	records, err := csvRepo.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
