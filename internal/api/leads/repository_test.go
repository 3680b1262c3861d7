package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func TestRepository_SaveLead(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(mockDB, testLogger())
	lead := types.Lead{
		Name:        "Maria Silva",
		Email:       "maria@example.com",
		Phone:       "+351911111111",
		Destination: "Goa",
		Message:     "Looking at December dates",
	}
	wantID := uuid.New()

	mockDB.ExpectQuery("INSERT INTO leads").
		WithArgs(lead.Name, lead.Email, lead.Phone, lead.Destination, lead.Message).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(wantID))

	id, err := repo.SaveLead(context.Background(), lead)
	require.NoError(t, err)
	assert.Equal(t, wantID, id)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestRepository_SaveLeadFailure(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewRepository(mockDB, testLogger())

	mockDB.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("relation \"leads\" does not exist"))

	_, err = repo.SaveLead(context.Background(), types.Lead{Name: "x", Email: "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert lead")
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
