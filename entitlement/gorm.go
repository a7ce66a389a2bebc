package entitlement

import (
	"context"

	"github.com/skillsenselab/authcore/database"
)

// RoleAssignment binds a role name to a principal at a tenant.
type RoleAssignment struct {
	database.BaseModel
	SubjectID string `gorm:"index:idx_role_subject_tenant;size:64;not null"`
	TenantID  string `gorm:"index:idx_role_subject_tenant;size:64"`
	Role      string `gorm:"size:64;not null"`
}

// ModuleSubscription records an active module for a tenant.
type ModuleSubscription struct {
	database.BaseModel
	TenantID string `gorm:"index;size:64"`
	ModuleID string `gorm:"size:64;not null"`
	Active   bool   `gorm:"not null;default:true"`
}

// GormResolver resolves entitlements from relational role and subscription
// tables.
type GormResolver struct {
	db *database.DB
}

// NewGormResolver creates a relational resolver and migrates its tables.
func NewGormResolver(db *database.DB) (*GormResolver, error) {
	if err := db.AutoMigrate(&RoleAssignment{}, &ModuleSubscription{}); err != nil {
		return nil, err
	}
	return &GormResolver{db: db}, nil
}

func (r *GormResolver) Resolve(ctx context.Context, subjectID, tenantID string) (Result, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&RoleAssignment{}).
		Where("subject_id = ? AND tenant_id = ?", subjectID, tenantID).
		Pluck("role", &roles).Error
	if err != nil {
		return Result{}, err
	}

	var modules []string
	err = r.db.WithContext(ctx).
		Model(&ModuleSubscription{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Pluck("module_id", &modules).Error
	if err != nil {
		return Result{}, err
	}

	// Empty sets are a valid result, not an error.
	if roles == nil {
		roles = []string{}
	}
	if modules == nil {
		modules = []string{}
	}
	return Result{Roles: roles, Modules: modules}, nil
}

var _ Resolver = (*GormResolver)(nil)
