// Package submissionrepository keeps the postgres index of stored submissions
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
	querybuilder "gitlab.com/hirecode-2025.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	if schema == "" {
		schema = "public"
	}
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// SaveSubmission saves an index row, keeping the first row written for an ID
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, idx *domain.SubmissionIndex) error {
	tbl := domain.GetSubmissionIndexTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.ObjectKey, tbl.Language, tbl.AccessCode, tbl.ClientIP, tbl.SubmittedAt).
		Into(tbl.TableName()).
		Values(idx.ID, idx.ObjectKey, idx.Language, idx.AccessCode, idx.ClientIP, idx.SubmittedAt).
		OnConflict(tbl.ID).
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission index", "submissionId", idx.ID, "error", err)
		return fmt.Errorf("failed to save submission index: %w", err)
	}

	return nil
}

// GetSubmission retrieves an index row by ID
func (r *SubmissionRepository) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.SubmissionIndex, error) {
	tbl := domain.GetSubmissionIndexTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.ObjectKey, tbl.Language, tbl.AccessCode, tbl.ClientIP, tbl.SubmittedAt).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var idx domain.SubmissionIndex
	if err := r.db.GetContext(ctx, &idx, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission index", "submissionId", id, "error", err)
		return nil, fmt.Errorf("failed to get submission index: %w", err)
	}

	return &idx, nil
}
