package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/consite/inventory-service/internal/inventory"
	"github.com/consite/inventory-service/internal/inventory/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type inventoryRow struct {
	model.Inventory
	Product  model.Product  `db:"product"`
	Location model.Location `db:"location"`
}

func (r inventoryRow) toModel() model.Inventory {
	inv := r.Inventory
	p := r.Product
	l := r.Location
	inv.Product = &p
	inv.Location = &l
	return inv
}

const joinedColumns = `
        i.*,
        p.id AS "product.id", p.sku AS "product.sku", p.name AS "product.name",
        p.category AS "product.category", p.main_category AS "product.main_category",
        p.unit AS "product.unit", p.price AS "product.price",
        p.default_min_stock AS "product.default_min_stock", p.status AS "product.status",
        l.id AS "location.id", l.name AS "location.name",
        l.type AS "location.type", l.status AS "location.status"
`

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Inventory, error) {
	var row inventoryRow
	query := `
        SELECT ` + joinedColumns + `
        FROM inventory i
        JOIN products p ON p.id = i.product_id
        JOIN locations l ON l.id = i.location_id
        WHERE i.id = $1
    `
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	inv := row.toModel()
	return &inv, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.Inventory, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Scope.MatchNone {
		conditions = append(conditions, "i.id = -1")
	} else if f.Scope.LocationID != nil {
		conditions = append(conditions, "i.location_id = :scope_location_id")
		args["scope_location_id"] = *f.Scope.LocationID
	}
	// Explicit filter on top of the derived restriction; for scoped
	// callers both name the same location or the gate already refused.
	if f.LocationID != nil {
		conditions = append(conditions, "i.location_id = :location_id")
		args["location_id"] = *f.LocationID
	}
	if f.ProductID != nil {
		conditions = append(conditions, "i.product_id = :product_id")
		args["product_id"] = *f.ProductID
	}
	if f.Category != "" {
		conditions = append(conditions, "p.category = :category")
		args["category"] = f.Category
	}
	if f.Search != "" {
		conditions = append(conditions, "(p.name ILIKE :search OR p.sku ILIKE :search OR l.name ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	fromClause := `
        FROM inventory i
        JOIN products p ON p.id = i.product_id
        JOIN locations l ON l.id = i.location_id
    `

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*)"+fromClause+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT " + joinedColumns + fromClause + whereClause + " ORDER BY l.name ASC, p.name ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var raw []inventoryRow
	if err := nstmt.SelectContext(ctx, &raw, args); err != nil {
		return nil, 0, err
	}

	items := make([]model.Inventory, len(raw))
	for i, row := range raw {
		items[i] = row.toModel()
	}
	return items, count, nil
}

func (r *PGRepository) Create(ctx context.Context, inv *model.Inventory) error {
	query := `
        INSERT INTO inventory (location_id, product_id, quantity, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
        RETURNING id
    `
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	return r.DB.GetContext(ctx, &inv.ID, query, inv.LocationID, inv.ProductID, inv.Quantity, now)
}

func (r *PGRepository) AdjustQuantity(ctx context.Context, id, delta int64) (*model.Inventory, bool, error) {
	// The quantity floor and the decrement are a single statement, so two
	// racing deductions can never both pass the insufficient-stock check.
	query := `
        UPDATE inventory
        SET quantity = quantity - $2, updated_at = $3
        WHERE id = $1 AND quantity >= $2
    `
	res, err := r.DB.ExecContext(ctx, query, id, delta, time.Now())
	if err != nil {
		return nil, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if affected == 0 {
		return nil, false, nil
	}

	updated, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, true, err
	}
	return updated, true, nil
}

func (r *PGRepository) Transfer(ctx context.Context, p inventory.TransferParams) (bool, error) {
	applied := false
	err := postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		now := time.Now()

		res, err := tx.ExecContext(ctx, `
            UPDATE inventory
            SET quantity = quantity - $2, updated_at = $3
            WHERE id = $1 AND quantity >= $2
        `, p.SourceInventoryID, p.Quantity, now)
		if err != nil {
			return fmt.Errorf("failed to decrement source inventory: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (location_id, product_id, quantity, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $4)
            ON CONFLICT (location_id, product_id)
            DO UPDATE SET
                quantity = inventory.quantity + EXCLUDED.quantity,
                updated_at = EXCLUDED.updated_at
        `, p.TargetLocationID, p.ProductID, p.Quantity, now)
		if err != nil {
			return fmt.Errorf("failed to upsert target inventory: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO audit_logs (user_id, action, resource, details, created_at)
            VALUES ($1, $2, $3, $4, $5)
        `, p.ActorID, model.AuditAssetTransfer, fmt.Sprintf("Product:%d", p.ProductID), p.AuditDetails, now)
		if err != nil {
			return fmt.Errorf("failed to log transfer: %w", err)
		}

		applied = true
		return nil
	})
	return applied, err
}

func (r *PGRepository) SumQuantityByLocation(ctx context.Context, locationID int64) (int64, error) {
	var sum int64
	err := r.DB.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE location_id = $1`, locationID)
	return sum, err
}

func (r *PGRepository) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory WHERE location_id = $1`, locationID)
	return count, err
}

func (r *PGRepository) TotalQuantity(ctx context.Context) (int64, error) {
	var sum int64
	err := r.DB.GetContext(ctx, &sum, `SELECT COALESCE(SUM(quantity), 0) FROM inventory`)
	return sum, err
}

func (r *PGRepository) LowStockCount(ctx context.Context, locationID int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory WHERE location_id = $1 AND quantity <= min_stock`, locationID)
	return count, err
}
