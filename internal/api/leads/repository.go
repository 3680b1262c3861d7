package leads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure implementation satisfies the interface
var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	SaveLead(ctx context.Context, lead types.Lead) (uuid.UUID, error)
}

type RepositoryImpl struct {
	db     DB
	logger *slog.Logger
}

func NewRepository(db DB, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{db: db, logger: logger}
}

func (r *RepositoryImpl) SaveLead(ctx context.Context, lead types.Lead) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO leads (name, email, phone, destination, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		lead.Name, lead.Email, lead.Phone, lead.Destination, lead.Message,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert lead: %w", err)
	}
	return id, nil
}
