package indexerdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/petegordon/mferoll-sub000/pkg/betstore"
	mghelper "github.com/petegordon/mferoll-sub000/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating indexer_checkpoints table...")
		if err := mghelper.CreateSchema(ctx, db, &betstore.CheckpointDao{}); err != nil {
			return err
		}
		// progress is tracked by a single keyed row
		_, err := db.ExecContext(ctx,
			"ALTER TABLE indexer_checkpoints ADD CONSTRAINT indexer_checkpoints_singleton CHECK (id = 'default')")
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping indexer_checkpoints table...")
		return mghelper.DropTables(ctx, db, &betstore.CheckpointDao{})
	})
}
