package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/NikolaiKhriapov/full-stack-app/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20240901000001, down_20240901000001)
}

// up_20240901000001 creates the customers table
func up_20240901000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating customers table...")

	_, err := db.NewCreateTable().
		Model((*models.Customer)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create customers table: %w", err)
	}

	// Email is the login identifier; lookups during authentication hit this index.
	_, err = db.NewCreateIndex().
		Model((*models.Customer)(nil)).
		Index("idx_customers_email").
		Column("email").
		Unique().
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	fmt.Println(" OK")
	return nil
}

// down_20240901000001 drops the customers table
func down_20240901000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] dropping customers table...")

	_, err := db.NewDropTable().
		Model((*models.Customer)(nil)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop customers table: %w", err)
	}

	fmt.Println(" OK")
	return nil
}
