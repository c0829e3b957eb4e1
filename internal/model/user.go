package model

type UserRole string

const (
	RoleSuperAdmin   UserRole = "SUPER_ADMIN"
	RoleStoreManager UserRole = "STORE_MANAGER"
	RoleSiteEngineer UserRole = "SITE_ENGINEER"
)

// LocationScoped reports whether the role is restricted to a single
// assigned location.
func (r UserRole) LocationScoped() bool {
	return r == RoleStoreManager || r == RoleSiteEngineer
}

type User struct {
	BaseModel
	Email        string   `db:"email" json:"email"`
	Name         string   `db:"name" json:"name"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Role         UserRole `db:"role" json:"role"`
	LocationID   *int64   `db:"location_id" json:"location_id"`
	IsActive     bool     `db:"is_active" json:"is_active"`
}
