package submissionrepository

import (
	"context"
	"fmt"
)

const createSubmissionsTable = `
	CREATE TABLE IF NOT EXISTS %s.submissions (
		id           UUID PRIMARY KEY,
		object_key   TEXT NOT NULL,
		language     TEXT NOT NULL,
		access_code  TEXT NOT NULL,
		client_ip    TEXT NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL
	)
`

// Migrate creates the submissions table when it does not exist
func (r *SubmissionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(createSubmissionsTable, r.schema)); err != nil {
		return fmt.Errorf("failed to create submissions table: %w", err)
	}
	return nil
}
