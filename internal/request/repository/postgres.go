package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/postgres"
	"github.com/consite/inventory-service/internal/request/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type requestRow struct {
	model.InventoryRequest
	Product          model.Product  `db:"product"`
	Location         model.Location `db:"location"`
	RequestedByName  string         `db:"requested_by_name"`
	RequestedByEmail string         `db:"requested_by_email"`
	ApprovedByName   *string        `db:"approved_by_name"`
	ApprovedByEmail  *string        `db:"approved_by_email"`
}

func (r requestRow) toModel() model.InventoryRequest {
	req := r.InventoryRequest
	p := r.Product
	l := r.Location
	req.Product = &p
	req.Location = &l
	req.RequestedBy = &model.User{
		BaseModel: model.BaseModel{ID: req.RequestedByID},
		Name:      r.RequestedByName,
		Email:     r.RequestedByEmail,
	}
	if req.ApprovedByID != nil && r.ApprovedByName != nil {
		req.ApprovedBy = &model.User{
			BaseModel: model.BaseModel{ID: *req.ApprovedByID},
			Name:      *r.ApprovedByName,
		}
		if r.ApprovedByEmail != nil {
			req.ApprovedBy.Email = *r.ApprovedByEmail
		}
	}
	return req
}

const joinedColumns = `
        r.*,
        p.id AS "product.id", p.sku AS "product.sku", p.name AS "product.name",
        p.category AS "product.category", p.unit AS "product.unit", p.status AS "product.status",
        l.id AS "location.id", l.name AS "location.name", l.type AS "location.type",
        rb.name AS requested_by_name, rb.email AS requested_by_email,
        ab.name AS approved_by_name, ab.email AS approved_by_email
`

const joinedFrom = `
        FROM inventory_requests r
        JOIN products p ON p.id = r.product_id
        JOIN locations l ON l.id = r.location_id
        JOIN users rb ON rb.id = r.requested_by_id
        LEFT JOIN users ab ON ab.id = r.approved_by_id
`

func (r *PGRepository) Create(ctx context.Context, req *model.InventoryRequest) error {
	query := `
        INSERT INTO inventory_requests
            (product_id, location_id, quantity, requested_by_id, status, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
        RETURNING id
    `
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	return r.DB.GetContext(ctx, &req.ID, query,
		req.ProductID, req.LocationID, req.Quantity, req.RequestedByID, req.Status, req.Notes, now)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.InventoryRequest, error) {
	var row requestRow
	err := r.DB.GetContext(ctx, &row, "SELECT "+joinedColumns+joinedFrom+" WHERE r.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	req := row.toModel()
	return &req, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.RequestFilters) ([]model.InventoryRequest, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Scope.MatchNone {
		conditions = append(conditions, "r.id = -1")
	} else if f.Scope.LocationID != nil {
		conditions = append(conditions, "r.location_id = :location_id")
		args["location_id"] = *f.Scope.LocationID
	}
	if f.Status != "" {
		conditions = append(conditions, "r.status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*)"+joinedFrom+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT " + joinedColumns + joinedFrom + whereClause + " ORDER BY r.created_at DESC"
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

	var raw []requestRow
	if err := nstmt.SelectContext(ctx, &raw, args); err != nil {
		return nil, 0, err
	}

	items := make([]model.InventoryRequest, len(raw))
	for i, row := range raw {
		items[i] = row.toModel()
	}
	return items, count, nil
}

func (r *PGRepository) CountByStatus(ctx context.Context, status model.RequestStatus) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory_requests WHERE status = $1`, status)
	return count, err
}

func (r *PGRepository) CountPendingByLocation(ctx context.Context, locationID int64) (int, error) {
	var count int
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM inventory_requests WHERE location_id = $1 AND status = $2`,
		locationID, model.RequestPending)
	return count, err
}

func (r *PGRepository) Approve(ctx context.Context, id, approverID int64) (bool, error) {
	applied := false
	err := postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		now := time.Now()

		// Guarding on the PENDING precondition makes the status flip the
		// single winner-decides step of a racing pair of approvals.
		var locationID, productID, quantity int64
		err := tx.QueryRowContext(ctx, `
            UPDATE inventory_requests
            SET status = $2, approved_by_id = $3, updated_at = $4
            WHERE id = $1 AND status = $5
            RETURNING location_id, product_id, quantity
        `, id, model.RequestApproved, approverID, now, model.RequestPending).
			Scan(&locationID, &productID, &quantity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO inventory (location_id, product_id, quantity, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $4)
            ON CONFLICT (location_id, product_id)
            DO UPDATE SET
                quantity = inventory.quantity + EXCLUDED.quantity,
                updated_at = EXCLUDED.updated_at
        `, locationID, productID, quantity, now)
		if err != nil {
			return fmt.Errorf("failed to apply approved quantity: %w", err)
		}

		applied = true
		return nil
	})
	return applied, err
}

func (r *PGRepository) Reject(ctx context.Context, id, approverID int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE inventory_requests
        SET status = $2, approved_by_id = $3, updated_at = $4
        WHERE id = $1 AND status = $5
    `, id, model.RequestRejected, approverID, time.Now(), model.RequestPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
