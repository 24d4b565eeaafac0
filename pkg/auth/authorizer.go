package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/enums"
)

// Subject is the authenticated principal a capability check runs against.
type Subject struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Authorizer is the single capability check consumed by every handler
// that needs an access decision. Centralizing it here keeps role logic
// out of individual routes.
type Authorizer interface {
	CanAccess(ctx context.Context, subject Subject, resource, action string) bool
}

// Resource/action vocabulary used by the API surface.
const (
	ResourceCatalog   = "catalog"
	ResourceContent   = "content"
	ResourceOrders    = "orders"
	ResourceAnalytics = "analytics"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionManage = "manage"
)

type roleAuthorizer struct {
	grants map[enums.UserRole]map[string][]string
}

// NewRoleAuthorizer returns the static role-based capability table.
func NewRoleAuthorizer() Authorizer {
	return &roleAuthorizer{
		grants: map[enums.UserRole]map[string][]string{
			enums.UserRoleCustomer: {
				ResourceCatalog: {ActionRead},
				ResourceContent: {ActionRead},
				ResourceOrders:  {ActionRead, ActionCreate},
			},
			enums.UserRoleAdmin: {
				ResourceCatalog:   {ActionRead, ActionManage},
				ResourceContent:   {ActionRead, ActionManage},
				ResourceOrders:    {ActionRead, ActionCreate, ActionManage},
				ResourceAnalytics: {ActionRead},
			},
		},
	}
}

func (a *roleAuthorizer) CanAccess(_ context.Context, subject Subject, resource, action string) bool {
	actions, ok := a.grants[subject.Role][resource]
	if !ok {
		return false
	}
	for _, candidate := range actions {
		if candidate == action {
			return true
		}
	}
	return false
}
