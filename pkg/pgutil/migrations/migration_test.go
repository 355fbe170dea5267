package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/petegordon/mferoll-sub000/pkg/config"
	"github.com/petegordon/mferoll-sub000/pkg/pgutil"
)

type sampleDao struct {
	bun.BaseModel `bun:"table:sample_rolls"`
	ID            int64  `bun:",pk,autoincrement"`
	Player        string `bun:",notnull,type:varchar(42)"`
	Total         int    `bun:",nullzero"`
}

func TestConnectDB_InvalidHost(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     5432,
		User:     "test",
		Password: "test",
		Database: "test",
		SSLMode:  "disable",
	}

	db, err := pgutil.ConnectDB(context.Background(), cfg)
	if err == nil {
		_ = db.Close()
		t.Fatal("ConnectDB() should fail with invalid host")
	}
}

func TestModelIndexName(t *testing.T) {
	db := pgutil.SetupTestDB(t)

	name, err := ModelIndexName(db, (*sampleDao)(nil), "player")
	if err != nil {
		t.Fatalf("ModelIndexName() failed: %v", err)
	}
	if name != "idx_sample_rolls_player" {
		t.Fatalf("expected idx_sample_rolls_player, got %s", name)
	}

	if _, err := ModelIndexName(db, nil, "player"); err == nil {
		t.Fatal("expected error for nil model")
	}
}

func TestCreateAndDropSchema(t *testing.T) {
	db := pgutil.SetupTestDB(t)
	ctx := context.Background()

	if err := CreateSchema(ctx, db, (*sampleDao)(nil)); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}
	// idempotent
	if err := CreateSchema(ctx, db, (*sampleDao)(nil)); err != nil {
		t.Fatalf("second CreateSchema() failed: %v", err)
	}
	pgutil.AssertTableExists(t, db, "sample_rolls")

	if err := CreateModelIndexes(ctx, db, (*sampleDao)(nil), "player", "total"); err != nil {
		t.Fatalf("CreateModelIndexes() failed: %v", err)
	}
	pgutil.AssertIndexExists(t, db, "idx_sample_rolls_player")
	pgutil.AssertIndexExists(t, db, "idx_sample_rolls_total")

	if _, err := db.NewInsert().Model(&sampleDao{Player: "0xaa", Total: 7}).Exec(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	pgutil.AssertRowCount(t, db, "sample_rolls", 1)

	if err := DropTables(ctx, db, (*sampleDao)(nil)); err != nil {
		t.Fatalf("DropTables() failed: %v", err)
	}

	var exists bool
	if err := db.NewSelect().
		ColumnExpr("EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = ?)", "sample_rolls").
		Scan(ctx, &exists); err != nil {
		t.Fatalf("table lookup failed: %v", err)
	}
	if exists {
		t.Fatal("expected sample_rolls to be dropped")
	}
}
