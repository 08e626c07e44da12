package repository

import (
	"context"
	"database/sql"
	"testing"

	"airzy-ingest/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupMockAlertEventsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *AlertEventRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewAlertEventRepository(db, zap.NewNop())

	return db, mock, repo
}

func TestInsertAlertEvent_Success(t *testing.T) {
	db, mock, repo := setupMockAlertEventsDB(t)
	defer db.Close()

	eventID := uuid.New().String()
	mock.ExpectExec(`INSERT INTO alert_events`).
		WithArgs(eventID, int64(1), domain.DimensionPM25, 45.0, 40.0, "minji@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := &domain.AlertEvent{
		EventID:   eventID,
		AccountID: 1,
		Dimension: domain.DimensionPM25,
		Observed:  45.0,
		Threshold: 40.0,
		SentTo:    "minji@example.com",
	}

	err := repo.Insert(context.Background(), event)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAlertEvent_Failure(t *testing.T) {
	db, mock, repo := setupMockAlertEventsDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO alert_events`).
		WillReturnError(sql.ErrConnDone)

	event := &domain.AlertEvent{
		EventID:   uuid.New().String(),
		AccountID: 1,
		Dimension: domain.DimensionTemperature,
		Observed:  31.0,
		Threshold: 30.0,
		SentTo:    "minji@example.com",
	}

	err := repo.Insert(context.Background(), event)

	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAlertEvent_NilEvent(t *testing.T) {
	db, _, repo := setupMockAlertEventsDB(t)
	defer db.Close()

	err := repo.Insert(context.Background(), nil)

	assert.Error(t, err)
}
