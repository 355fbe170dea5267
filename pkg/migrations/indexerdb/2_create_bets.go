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
		log.Println("creating bets table...")
		if err := mghelper.CreateSchema(ctx, db, &betstore.BetDao{}); err != nil {
			return err
		}
		log.Println("creating bets indexes...")
		return mghelper.CreateModelIndexes(ctx, db, &betstore.BetDao{}, "player", "settled_at")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping bets table...")
		return mghelper.DropTables(ctx, db, &betstore.BetDao{})
	})
}
