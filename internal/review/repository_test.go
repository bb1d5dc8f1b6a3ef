package review

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var reviewCols = []string{"id", "booking_id", "service_id", "client_id", "rating", "comment", "created_at"}

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func TestCreateReview(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`INSERT INTO reviews \(booking_id, service_id, client_id, rating, comment\)`).
		WithArgs(10, 7, 1, 5, "great work").
		WillReturnRows(sqlmock.NewRows(reviewCols).AddRow(1, 10, 7, 1, 5, "great work", time.Now()))

	rev, err := repo.Create(context.Background(), 10, 7, 1, 5, "great work")
	require.NoError(t, err)
	require.Equal(t, 5, rev.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReview_DuplicateBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs(10, 7, 1, 4, "").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), 10, 7, 1, 4, "")
	require.ErrorIs(t, err, ErrDuplicateReview)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByService(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM reviews[\s\S]*WHERE service_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow(2, 11, 7, 3, 4, "good", now).
			AddRow(1, 10, 7, 1, 5, "great work", now.Add(-time.Hour)))

	reviews, err := repo.ListByService(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, 4, reviews[0].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}
