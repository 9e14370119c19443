package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddLearningPreferences, downAddLearningPreferences)
}

func upAddLearningPreferences(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		ALTER TABLE users ADD COLUMN language TEXT;
		ALTER TABLE users ADD COLUMN level TEXT;
		ALTER TABLE users ADD COLUMN reason TEXT;
		ALTER TABLE users ADD COLUMN daily_goal INTEGER CHECK (daily_goal >= 0);
	`)
	return err
}

func downAddLearningPreferences(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		ALTER TABLE users DROP COLUMN daily_goal;
		ALTER TABLE users DROP COLUMN reason;
		ALTER TABLE users DROP COLUMN level;
		ALTER TABLE users DROP COLUMN language;
	`)
	return err
}
