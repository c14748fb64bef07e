package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleTable(t *testing.T) {
	assert.Equal(t, []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}, Roles())
	assert.True(t, RoleEditor.Valid())
	assert.False(t, Role("owner").Valid())
	assert.Equal(t, "Super Admin", RoleSuperAdmin.Label())
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole([]Role{RoleAdmin, RoleSuperAdmin}, RoleSuperAdmin))
	assert.False(t, HasRole([]Role{RoleAdmin}, RoleSuperAdmin))
	assert.False(t, HasRole(nil, RoleSuperAdmin))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@stremini.ai", NormalizeEmail("  Ada@Stremini.AI "))
}

func TestSessionContext(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))

	s := &Session{ID: "sid"}
	ctx := ContextWithSession(context.Background(), s)
	assert.Same(t, s, SessionFromContext(ctx))
	assert.Equal(t, "authenticated", SessionAuthenticated.String())
	assert.Equal(t, "unknown", SessionUnknown.String())
}

func TestStatusFilterAndTab(t *testing.T) {
	assert.True(t, StatusFilterAll.Valid())
	assert.False(t, StatusFilter("draft").Valid())
	assert.True(t, TabBlog.Valid())
	assert.Equal(t, "Team", TabTeam.Label())
}
