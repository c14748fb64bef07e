package dataservice

import (
	"context"
	"fmt"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/models"
)

type operation string

const (
	opSelect operation = "select"
	opInsert operation = "insert"
	opUpdate operation = "update"
	opDelete operation = "delete"
)

// collection describes one table and its row-level rules for the normal client.
// Authenticated sessions get full access to every collection that is not elevatedOnly.
type collection struct {
	newModel     func() interface{}
	elevatedOnly bool
	anonymous    map[operation]bool
	// anonymousScope is added to every anonymous read
	anonymousScope []repositories.Filter
}

var collections = map[string]collection{
	repositories.CollectionWaitlist: {
		newModel:  func() interface{} { return &models.WaitlistEntry{} },
		anonymous: map[operation]bool{opInsert: true},
	},
	repositories.CollectionTeamMembers: {
		newModel:       func() interface{} { return &models.TeamMember{} },
		anonymous:      map[operation]bool{opSelect: true},
		anonymousScope: []repositories.Filter{{Column: entities.FieldIsActive, Value: true}},
	},
	repositories.CollectionBlogPosts: {
		newModel:       func() interface{} { return &models.BlogPost{} },
		anonymous:      map[operation]bool{opSelect: true},
		anonymousScope: []repositories.Filter{{Column: entities.FieldIsPublished, Value: true}},
	},
	repositories.CollectionIdentities: {
		newModel:     func() interface{} { return &models.Identity{} },
		elevatedOnly: true,
	},
	repositories.CollectionUserRoles: {
		newModel:     func() interface{} { return &models.UserRole{} },
		elevatedOnly: true,
	},
}

// authorize resolves the collection and the extra filters the caller is scoped to.
func authorize(ctx context.Context, elevated bool, name string, op operation) (collection, []repositories.Filter, error) {
	col, ok := collections[name]
	if !ok {
		return collection{}, nil, domainerrors.BadRequest(fmt.Sprintf("unknown collection %q", name))
	}
	if elevated {
		return col, nil, nil
	}
	if col.elevatedOnly {
		return collection{}, nil, domainerrors.Forbidden(fmt.Sprintf("%s on %s requires elevated access", op, name))
	}
	if entities.SessionFromContext(ctx) != nil {
		return col, nil, nil
	}
	if col.anonymous[op] {
		if op == opSelect {
			return col, col.anonymousScope, nil
		}
		return col, nil, nil
	}
	return collection{}, nil, domainerrors.Forbidden(fmt.Sprintf("%s on %s requires an authenticated session", op, name))
}
