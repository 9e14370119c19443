package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddAvatarURL, downAddAvatarURL)
}

// avatar_url holds the public object URL handed out with the upload link.
func upAddAvatarURL(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `ALTER TABLE users ADD COLUMN IF NOT EXISTS avatar_url TEXT`)
	return err
}

func downAddAvatarURL(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `ALTER TABLE users DROP COLUMN IF EXISTS avatar_url`)
	return err
}
