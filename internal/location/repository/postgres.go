package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/consite/inventory-service/internal/location/dto"
	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateWithUser(ctx context.Context, loc *model.Location, user *model.User) error {
	return postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
            INSERT INTO locations (name, type, status, region, description, address, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
            RETURNING id, created_at, updated_at
        `, loc.Name, loc.Type, loc.Status, loc.Region, loc.Description, loc.Address).
			Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
		if err != nil {
			return err
		}

		if user != nil {
			err = tx.QueryRowxContext(ctx, `
                INSERT INTO users (email, name, password_hash, role, location_id, is_active, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
                RETURNING id
            `, user.Email, user.Name, user.PasswordHash, user.Role, loc.ID).Scan(&user.ID)
			if err != nil {
				return err
			}
			user.LocationID = &loc.ID

			_, err = tx.ExecContext(ctx,
				`UPDATE locations SET assigned_user_id = $2, updated_at = NOW() WHERE id = $1`,
				loc.ID, user.ID)
			if err != nil {
				return err
			}
			loc.AssignedUserID = &user.ID
		}

		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Location, error) {
	var loc model.Location
	err := r.DB.GetContext(ctx, &loc, `SELECT * FROM locations WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.LocationFilters) ([]*model.Location, int64, error) {
	var locations []*model.Location
	var count int64

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Scope.MatchNone {
		conditions = append(conditions, "id = -1")
	} else if f.Scope.LocationID != nil {
		conditions = append(conditions, "id = :scope_location_id")
		args["scope_location_id"] = *f.Scope.LocationID
	}
	if f.Type != "" {
		conditions = append(conditions, "type = :type")
		args["type"] = f.Type
	}
	if len(f.Statuses) > 0 {
		placeholders := make([]string, 0, len(f.Statuses))
		for i, s := range f.Statuses {
			name := fmt.Sprintf("status_%d", i)
			placeholders = append(placeholders, ":"+name)
			args[name] = s
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR region ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM locations" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := fmt.Sprintf("SELECT * FROM locations%s ORDER BY created_at DESC", whereClause)
	if f.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, f.Offset())
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &locations, args); err != nil {
		return nil, 0, err
	}

	return locations, count, nil
}

func (r *PGRepository) Update(ctx context.Context, loc *model.Location) error {
	query := `
        UPDATE locations
        SET name = :name,
            region = :region,
            description = :description,
            address = :address,
            status = :status,
            updated_at = NOW()
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, loc)
	return err
}

func (r *PGRepository) NameExists(ctx context.Context, name string, locType model.LocationType, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM locations WHERE lower(name) = lower($1) AND type = $2 AND id != $3`
	if err := r.DB.GetContext(ctx, &count, query, name, locType, excludeID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) Finish(ctx context.Context, id int64) (bool, error) {
	applied := false
	err := postgres.WithTransaction(ctx, r.DB, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
            UPDATE locations SET status = $2, updated_at = NOW()
            WHERE id = $1 AND status = $3
        `, id, model.LocationCompleted, model.LocationActive)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		// The engineers pinned to a finished site lose access with it.
		_, err = tx.ExecContext(ctx, `
            UPDATE users SET is_active = false, updated_at = NOW()
            WHERE location_id = $1 AND role = $2
        `, id, model.RoleSiteEngineer)
		if err != nil {
			return err
		}

		applied = true
		return nil
	})
	return applied, err
}

func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}

func (r *PGRepository) CountByTypeAndStatus(ctx context.Context, locType model.LocationType, status model.LocationStatus) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count,
		`SELECT count(*) FROM locations WHERE type = $1 AND status = $2`, locType, status)
	return count, err
}
