package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stremini.backend/internal/config"
	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/interfaces/http/middleware"
	"stremini.backend/internal/usecases"
	"stremini.backend/pkg/utils"
)

const (
	adminEmail    = "admin@stremini.io"
	adminPassword = "secret"
)

type authStub struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
}

func newAuthStub() *authStub {
	return &authStub{sessions: map[string]*entities.Session{}}
}

func (a *authStub) SignIn(_ context.Context, email, password string) (*entities.Session, error) {
	if email != adminEmail || password != adminPassword {
		return nil, domainerrors.Unauthorized("Invalid login credentials")
	}
	s := &entities.Session{ID: uuid.NewString(), UserID: uuid.New(), Email: email, CreatedAt: time.Now()}
	a.add(s)
	return s, nil
}

func (a *authStub) add(s *entities.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[s.ID] = s
}

func (a *authStub) SignOut(_ context.Context, sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, sessionID)
	return nil
}

func (a *authStub) GetSession(_ context.Context, sessionID string) (*entities.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[sessionID], nil
}

func (a *authStub) OnSessionChange(context.Context, string, func(entities.SessionChange)) (repositories.Subscription, error) {
	return noopSubscription{}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() error { return nil }

type record[E any] interface {
	EntityID() uuid.UUID
	Apply(entities.Patch) E
}

// memStore is an ordered in-memory collection
type memStore[E record[E]] struct {
	mu        sync.Mutex
	items     []E
	assign    func(E) E
	updateErr error
}

func (s *memStore[E]) LoadAll(context.Context) ([]E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]E(nil), s.items...), nil
}

func (s *memStore[E]) Create(_ context.Context, e E) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e = s.assign(e)
	s.items = append(s.items, e)
	return e, nil
}

func (s *memStore[E]) Update(_ context.Context, id uuid.UUID, patch entities.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items[i] = item.Apply(patch)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *memStore[E]) Remove(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *memStore[E]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type waitlistStub struct {
	*memStore[entities.WaitlistEntry]
}

type teamStub struct {
	*memStore[entities.TeamMember]
}

func (s teamStub) ListActive(ctx context.Context) ([]entities.TeamMember, error) {
	all, _ := s.LoadAll(ctx)
	out := []entities.TeamMember{}
	for _, m := range all {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

type blogStub struct {
	*memStore[entities.BlogPost]
}

func (s blogStub) ListPublished(ctx context.Context, p utils.PaginationParams) ([]entities.BlogPost, int64, error) {
	all, _ := s.LoadAll(ctx)
	out := []entities.BlogPost{}
	for _, post := range all {
		if post.IsPublished {
			out = append(out, post)
		}
	}
	total := int64(len(out))
	start := p.CalculateOffset()
	if start > len(out) {
		start = len(out)
	}
	end := start + p.Limit
	if p.Limit == 0 || end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (s blogStub) GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	all, _ := s.LoadAll(ctx)
	for _, post := range all {
		if post.IsPublished && post.Slug == slug {
			return &post, nil
		}
	}
	return nil, domainerrors.NotFound("blog post not found")
}

type senderStub struct {
	mu    sync.Mutex
	calls []map[string]string
	err   error
}

func (s *senderStub) Send(_ context.Context, _, _ string, vars map[string]string, _ repositories.EmailCredentials) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, vars)
	if s.err != nil {
		return http.StatusBadRequest, s.err
	}
	return http.StatusOK, nil
}

// elevatedStub implements only the identity calls the invitation flow makes
type elevatedStub struct {
	repositories.ElevatedDataService
	mu         sync.Mutex
	identities []entities.Identity
	roles      map[uuid.UUID][]entities.Role
}

func (e *elevatedStub) ListIdentities(context.Context) ([]entities.Identity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]entities.Identity(nil), e.identities...), nil
}

func (e *elevatedStub) CreateIdentity(_ context.Context, email string, opts entities.CreateIdentityOptions) (*entities.Identity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := entities.Identity{ID: uuid.New(), Email: email, Metadata: opts.Metadata}
	e.identities = append(e.identities, id)
	return &id, nil
}

func (e *elevatedStub) GetRoles(_ context.Context, userID uuid.UUID) ([]entities.Role, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roles[userID], nil
}

func (e *elevatedStub) UpsertRoles(_ context.Context, userID uuid.UUID, roles []entities.Role) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.roles[userID] = roles
	return nil
}

type testEnv struct {
	router     *gin.Engine
	auth       *authStub
	waitlist   waitlistStub
	team       teamStub
	blog       blogStub
	sender     *senderStub
	elevated   *elevatedStub
	dashboards *usecases.DashboardRegistry
}

var errStoreDown = errors.New("store down")

func newTestEnv(t *testing.T, emailCfg config.EmailConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	env := &testEnv{
		auth: newAuthStub(),
		waitlist: waitlistStub{&memStore[entities.WaitlistEntry]{assign: func(e entities.WaitlistEntry) entities.WaitlistEntry {
			e.ID = uuid.New()
			e.CreatedAt = time.Now()
			return e
		}}},
		team: teamStub{&memStore[entities.TeamMember]{assign: func(m entities.TeamMember) entities.TeamMember {
			m.ID = uuid.New()
			return m
		}}},
		blog: blogStub{&memStore[entities.BlogPost]{assign: func(p entities.BlogPost) entities.BlogPost {
			p.ID = uuid.New()
			return p
		}}},
		sender:   &senderStub{},
		elevated: &elevatedStub{roles: map[uuid.UUID][]entities.Role{}},
	}
	env.dashboards = usecases.NewDashboardRegistry(env.auth, env.waitlist, env.team, env.blog)
	t.Cleanup(env.dashboards.Close)

	authUC := usecases.NewAuthUsecase(env.auth, env.dashboards)
	authH := NewAuthHandler(authUC, time.Hour, false)
	publicH := NewPublicHandler(
		usecases.NewWaitlistSignupUsecase(env.waitlist, env.sender, emailCfg),
		usecases.NewContentUsecase(env.team, env.blog, 10),
	)
	dashH := NewDashboardHandler(env.dashboards)
	inviteH := NewInvitationHandler(usecases.NewInvitationUsecase(env.auth, env.elevated))

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", authH.Login)
	v1.POST("/auth/logout", authH.Logout)
	v1.GET("/auth/session", authH.Session)
	v1.POST("/waitlist", publicH.JoinWaitlist)
	v1.GET("/teams", publicH.ListTeams)
	v1.GET("/blog", publicH.ListBlogPosts)
	v1.GET("/blog/:slug", publicH.GetBlogPost)

	admin := v1.Group("/admin", middleware.SessionMiddleware(authUC))
	admin.GET("/dashboard", dashH.Get)
	admin.PUT("/dashboard/filters", dashH.SetFilters)
	admin.GET("/waitlist/export", dashH.ExportWaitlist)
	admin.POST("/waitlist/:id/approve", dashH.ApproveEntry)
	admin.POST("/waitlist/:id/remove", dashH.RemoveEntry)
	admin.DELETE("/waitlist/:id", dashH.DeleteEntry)
	admin.POST("/team/modal", dashH.OpenTeamModal)
	admin.PUT("/team/modal", dashH.SaveTeamModal)
	admin.DELETE("/team/modal", dashH.CancelTeamModal)
	admin.DELETE("/team/:id", dashH.DeleteTeamMember)
	admin.POST("/blog/modal", dashH.OpenBlogModal)
	admin.PUT("/blog/modal", dashH.SaveBlogModal)
	admin.DELETE("/blog/modal", dashH.CancelBlogModal)
	admin.POST("/blog/:id/toggle-publish", dashH.TogglePublish)
	admin.DELETE("/blog/:id", dashH.DeleteBlogPost)
	admin.POST("/logout", dashH.Logout)
	admin.POST("/invitations", inviteH.Invite)

	env.router = r
	return env
}

func configuredEmail() config.EmailConfig {
	return config.EmailConfig{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", PrivateKey: "priv"}
}

// signIn registers a session directly and returns its id
func (e *testEnv) signIn(email string) *entities.Session {
	s := &entities.Session{ID: uuid.NewString(), UserID: uuid.New(), Email: email}
	e.auth.add(s)
	return s
}

func (e *testEnv) do(method, path, body, sessionID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
