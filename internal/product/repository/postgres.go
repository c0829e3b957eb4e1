package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/postgres"
	"github.com/consite/inventory-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product, initialLocationID *int64) error {
	return postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO products (
                sku, name, category, main_category, unit, description,
                price, default_min_stock, status, created_at, updated_at
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
            RETURNING id, created_at, updated_at
        `
		err := tx.QueryRowxContext(ctx, query,
			p.SKU, p.Name, p.Category, p.MainCategory, p.Unit, p.Description,
			p.Price, p.DefaultMinStock, p.Status,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}

		// An assigned product starts tracked at its location with zero
		// stock; quantity arrives later through the request workflow.
		if initialLocationID != nil {
			_, err = tx.ExecContext(ctx, `
                INSERT INTO inventory (location_id, product_id, quantity, min_stock, created_at, updated_at)
                VALUES ($1, $2, 0, $3, NOW(), NOW())
                ON CONFLICT (location_id, product_id) DO NOTHING
            `, *initialLocationID, p.ID, p.DefaultMinStock)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]*model.Product, int64, error) {
	var products []*model.Product
	var count int64

	conditions := []string{}
	args := map[string]interface{}{}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, 0, len(f.Statuses))
		for i, s := range f.Statuses {
			name := fmt.Sprintf("status_%d", i)
			placeholders = append(placeholders, ":"+name)
			args[name] = s
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = f.Category
	}
	if f.MainCategory != "" {
		conditions = append(conditions, "main_category = :main_category")
		args["main_category"] = f.MainCategory
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY created_at DESC", whereClause)
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, f.Offset())
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            category = :category,
            main_category = :main_category,
            unit = :unit,
            description = :description,
            price = :price,
            default_min_stock = :default_min_stock,
            status = :status,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) SetStatus(ctx context.Context, id int64, status model.ProductStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepository) LastSKU(ctx context.Context, prefix string) (string, error) {
	var sku string
	query := `SELECT sku FROM products WHERE sku LIKE $1 ORDER BY sku DESC LIMIT 1`
	err := r.DB.GetContext(ctx, &sku, query, prefix+"%")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return sku, nil
}

func (r *PGRepository) HolderRecipients(ctx context.Context, productID int64) ([]int64, error) {
	var ids []int64
	query := `
        SELECT DISTINCT l.assigned_user_id
        FROM inventory i
        JOIN locations l ON l.id = i.location_id
        WHERE i.product_id = $1 AND l.assigned_user_id IS NOT NULL
    `
	if err := r.DB.SelectContext(ctx, &ids, query, productID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PGRepository) CountByStatus(ctx context.Context, status model.ProductStatus) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE status = $1`, status)
	return count, err
}
