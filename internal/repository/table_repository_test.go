package repository_test

import (
	"context"
	"testing"

	"github.com/ndsrf/wedding-sub002/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTableRepository_GetByID_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tableRepo := repository.NewTableRepository(gormDB)

	tableID := uuid.New()
	weddingID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "tables" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wedding_id", "number", "capacity"}).
			AddRow(tableID.String(), weddingID.String(), 3, 8))

	table, err := tableRepo.GetByID(context.Background(), tableID)

	assert.NoError(t, err)
	assert.NotNil(t, table)
	assert.Equal(t, 3, table.Number)
	assert.Equal(t, 8, table.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableRepository_GetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tableRepo := repository.NewTableRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "tables" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wedding_id", "number", "capacity"}))

	table, err := tableRepo.GetByID(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableRepository_Delete_UnseatsGuests(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tableRepo := repository.NewTableRepository(gormDB)

	tableID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "family_members" SET "table_id"=`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`UPDATE "weddings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "tables" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tableRepo.Delete(context.Background(), tableID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tableRepo := repository.NewTableRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "family_members" SET "table_id"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "weddings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "tables" WHERE id =`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := tableRepo.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrTableNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
