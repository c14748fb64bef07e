package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role is an admin privilege level
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

var roles = enumTable[Role]{
	{RoleSuperAdmin, "Super Admin"},
	{RoleAdmin, "Admin"},
	{RoleEditor, "Editor"},
}

// Roles lists every legal role, highest privilege first
func Roles() []Role { return roles.values() }

func (r Role) Valid() bool    { return roles.has(r) }
func (r Role) Label() string  { return roles.label(r) }
func (r Role) String() string { return string(r) }

// HasRole reports whether want is present in assigned
func HasRole(assigned []Role, want Role) bool {
	for _, r := range assigned {
		if r == want {
			return true
		}
	}
	return false
}

// MetadataInvited marks identities created by the invitation flow
const MetadataInvited = "invited"

// Identity is an account in the identity subsystem
type Identity struct {
	ID               uuid.UUID              `json:"id"`
	Email            string                 `json:"email"`
	EmailConfirmedAt null.Time              `json:"emailConfirmedAt"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// CreateIdentityOptions controls how a new identity is provisioned
type CreateIdentityOptions struct {
	EmailConfirm bool
	Password     string
	Metadata     map[string]interface{}
}

// RoleAssignment holds the full role set of one identity
type RoleAssignment struct {
	UserID    uuid.UUID `json:"userId"`
	Roles     []Role    `json:"roles"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an address for identity lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LoginInput represents input for admin login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// InviteUserInput represents input for the invitation workflow
type InviteUserInput struct {
	Email string `json:"email" binding:"required,email"`
	Roles []Role `json:"roles" binding:"required,min=1,dive,user_role"`
}

// InviteResult is the tagged outcome of an invitation
type InviteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
