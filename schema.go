package bookstore

import (
	"context"

	"github.com/uptrace/bun"
)

var accountsSchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS "accounts" (
	"id" UUID PRIMARY KEY,
	"role" VARCHAR NOT NULL DEFAULT 'user',
	"name" VARCHAR,
	"email" VARCHAR,
	"username" VARCHAR NOT NULL,
	"avatar_path" VARCHAR,
	"password_hash" VARCHAR,
	"login_attempts" INTEGER DEFAULT 0,
	"login_attempt_at" TIMESTAMP,
	"loggedin_at" TIMESTAMP,
	"created_at" TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	"updated_at" TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	"deleted_at" TIMESTAMP
);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS "idx_accounts_username" ON "accounts" ("username");`,
	`CREATE UNIQUE INDEX IF NOT EXISTS "idx_accounts_email" ON "accounts" ("email") WHERE "email" IS NOT NULL;`,
}

// EnsureSchema creates the accounts table and its unique indexes. The
// unique indexes are what make concurrent bootstrap and registration
// races resolve to a single winner.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	for _, stmt := range accountsSchemaSQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return WrapStoreError(err, "failed to apply accounts schema")
		}
	}
	return nil
}
