package repositories

import (
	"context"

	"github.com/google/uuid"
	"stremini.backend/internal/domain/entities"
)

// Collections exposed by the remote data service
const (
	CollectionWaitlist    = "waitlist"
	CollectionTeamMembers = "team_members"
	CollectionBlogPosts   = "blog_posts"
	CollectionIdentities  = "identities"
	CollectionUserRoles   = "user_roles"
)

// Filter is an equality predicate on one column
type Filter struct {
	Column string
	Value  interface{}
}

// Order sorts by one column
type Order struct {
	Column string
	Desc   bool
}

// Query selects records from a collection. Zero Limit means no limit.
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
	Offset  int
}

// Eq appends an equality filter
func (q Query) Eq(column string, value interface{}) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

// DataService is the query/command surface of the remote data service.
// Insert fills record with the server-assigned fields.
type DataService interface {
	Select(ctx context.Context, collection string, query Query, dest interface{}) error
	Count(ctx context.Context, collection string, query Query) (int64, error)
	Insert(ctx context.Context, collection string, record interface{}) error
	Update(ctx context.Context, collection string, id uuid.UUID, patch entities.Patch) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
}

// Subscription is released by Unsubscribe; calling it more than once is safe.
type Subscription interface {
	Unsubscribe() error
}

// AuthService is the session principal of the remote data service
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*entities.Session, error)
	SignOut(ctx context.Context, sessionID string) error
	// GetSession returns nil, nil when no session exists.
	GetSession(ctx context.Context, sessionID string) (*entities.Session, error)
	OnSessionChange(ctx context.Context, sessionID string, fn func(entities.SessionChange)) (Subscription, error)
}

// IdentityAdmin is only implemented by the elevated client
type IdentityAdmin interface {
	ListIdentities(ctx context.Context) ([]entities.Identity, error)
	CreateIdentity(ctx context.Context, email string, opts entities.CreateIdentityOptions) (*entities.Identity, error)
	GetRoles(ctx context.Context, userID uuid.UUID) ([]entities.Role, error)
	UpsertRoles(ctx context.Context, userID uuid.UUID, roles []entities.Role) error
}

// ElevatedDataService bypasses row-level authorization
type ElevatedDataService interface {
	DataService
	IdentityAdmin
}
