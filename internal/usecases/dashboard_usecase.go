package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/metrics"
	"stremini.backend/pkg/logger"
)

const (
	entityWaitlist = "waitlist"
	entityTeam     = "team"
	entityBlog     = "blog"
)

// Delete prompts
const (
	PromptDeleteEntry      = "Are you sure you want to permanently delete this waitlist entry?"
	PromptDeleteTeamMember = "Are you sure you want to delete this team member?"
	PromptDeleteBlogPost   = "Are you sure you want to delete this blog post?"
)

// Confirmer asks a blocking yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// DashboardSnapshot is the rendered state of one admin dashboard
type DashboardSnapshot struct {
	Loading      bool                                `json:"loading"`
	SearchQuery  string                              `json:"searchQuery"`
	FilterStatus entities.StatusFilter               `json:"filterStatus"`
	Tab          entities.DashboardTab               `json:"tab"`
	Waitlist     []entities.WaitlistEntry            `json:"waitlist"`
	Team         []entities.TeamMember               `json:"team"`
	BlogPosts    []entities.BlogPost                 `json:"blogPosts"`
	TeamModal    ModalState[entities.TeamMemberForm] `json:"teamModal"`
	BlogModal    ModalState[entities.BlogPostForm]   `json:"blogModal"`
	Stats        entities.DashboardStats             `json:"stats"`
}

// DashboardController owns the cached collections and UI state of one admin session.
// State access is serialized by mu; remote calls run without holding it.
type DashboardController struct {
	session      *entities.Session
	waitlistRepo repositories.WaitlistRepository
	teamRepo     repositories.TeamRepository
	blogRepo     repositories.BlogRepository
	auth         repositories.AuthService
	now          func() time.Time

	loadOnce sync.Once

	mu           sync.Mutex
	loading      bool
	waitlist     *EntityCache[entities.WaitlistEntry]
	team         *EntityCache[entities.TeamMember]
	blog         *EntityCache[entities.BlogPost]
	searchQuery  string
	filterStatus entities.StatusFilter
	tab          entities.DashboardTab
	teamModal    editModal[entities.TeamMemberForm]
	blogModal    editModal[entities.BlogPostForm]
	rowsInFlight rowLocks
}

// rowLocks holds the ids with a row action in flight. Guarded by the controller's mu.
type rowLocks map[uuid.UUID]struct{}

func (l rowLocks) claim(id uuid.UUID) bool {
	if _, busy := l[id]; busy {
		return false
	}
	l[id] = struct{}{}
	return true
}

func (l rowLocks) release(id uuid.UUID) { delete(l, id) }

// NewDashboardController creates a controller for session with empty caches.
func NewDashboardController(
	session *entities.Session,
	waitlistRepo repositories.WaitlistRepository,
	teamRepo repositories.TeamRepository,
	blogRepo repositories.BlogRepository,
	auth repositories.AuthService,
) *DashboardController {
	return &DashboardController{
		session:      session,
		waitlistRepo: waitlistRepo,
		teamRepo:     teamRepo,
		blogRepo:     blogRepo,
		auth:         auth,
		now:          time.Now,
		waitlist:     NewEntityCache[entities.WaitlistEntry](),
		team:         NewEntityCache[entities.TeamMember](),
		blog:         NewEntityCache[entities.BlogPost](),
		filterStatus: entities.StatusFilterAll,
		tab:          entities.TabWaitlist,
		rowsInFlight: rowLocks{},
	}
}

func (c *DashboardController) scope(ctx context.Context) context.Context {
	return entities.ContextWithSession(ctx, c.session)
}

// Session returns the session the controller acts for.
func (c *DashboardController) Session() *entities.Session { return c.session }

func loadCollection[E any](ctx context.Context, entity string, load func(context.Context) ([]E, error)) ([]E, error) {
	items, err := load(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to load collection", zap.String("entity", entity), zap.Error(err))
		metrics.RecordLoadFailure(entity)
		return []E{}, fmt.Errorf("load %s: %w", entity, err)
	}
	return items, nil
}

// Load fetches all three collections concurrently. A failed load leaves its list empty
// and the first failure is returned once every load has finished.
func (c *DashboardController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	ctx = c.scope(ctx)
	var (
		waitlist []entities.WaitlistEntry
		team     []entities.TeamMember
		posts    []entities.BlogPost
		g        errgroup.Group
	)
	g.Go(func() (err error) {
		waitlist, err = loadCollection(ctx, entityWaitlist, c.waitlistRepo.LoadAll)
		return err
	})
	g.Go(func() (err error) {
		team, err = loadCollection(ctx, entityTeam, c.teamRepo.LoadAll)
		return err
	})
	g.Go(func() (err error) {
		posts, err = loadCollection(ctx, entityBlog, c.blogRepo.LoadAll)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	c.waitlist.Reset(waitlist)
	c.team.Reset(team)
	c.blog.Reset(posts)
	c.loading = false
	c.mu.Unlock()
	return err
}

// EnsureLoaded runs the initial Load once. The load does not observe ctx cancellation.
func (c *DashboardController) EnsureLoaded(ctx context.Context) {
	c.loadOnce.Do(func() {
		if err := c.Load(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "Dashboard loaded with failures", zap.Error(err))
		}
	})
}

// Loading reports whether the initial load is still running.
func (c *DashboardController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// SetFilters updates the search text, status filter and active tab. Nil fields are left as is.
func (c *DashboardController) SetFilters(input entities.DashboardFiltersInput) error {
	if input.FilterStatus != nil && !input.FilterStatus.Valid() {
		return domainerrors.BadRequest("invalid status filter")
	}
	if input.Tab != nil && !input.Tab.Valid() {
		return domainerrors.BadRequest("invalid tab")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if input.SearchQuery != nil {
		c.searchQuery = *input.SearchQuery
	}
	if input.FilterStatus != nil {
		c.filterStatus = *input.FilterStatus
	}
	if input.Tab != nil {
		c.tab = *input.Tab
	}
	return nil
}

// FilterWaitlist keeps entries matching status, then query as a case-insensitive
// substring of email or name. Order is preserved.
func FilterWaitlist(entries []entities.WaitlistEntry, query string, status entities.StatusFilter) []entities.WaitlistEntry {
	q := strings.ToLower(query)
	out := make([]entities.WaitlistEntry, 0, len(entries))
	for _, e := range entries {
		if status != entities.StatusFilterAll && string(e.Status) != string(status) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Email), q) && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterBlogPosts keeps posts whose title or excerpt contains query. The approved filter
// selects published posts and pending selects drafts; removed matches nothing.
func FilterBlogPosts(posts []entities.BlogPost, query string, status entities.StatusFilter) []entities.BlogPost {
	q := strings.ToLower(query)
	out := make([]entities.BlogPost, 0, len(posts))
	for _, p := range posts {
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Excerpt), q) {
			continue
		}
		switch status {
		case entities.StatusFilterAll:
		case entities.StatusFilterApproved:
			if !p.IsPublished {
				continue
			}
		case entities.StatusFilterPending:
			if p.IsPublished {
				continue
			}
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilteredWaitlist returns the cached entries matching the current filters.
func (c *DashboardController) FilteredWaitlist() []entities.WaitlistEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterWaitlist(c.waitlist.Items(), c.searchQuery, c.filterStatus)
}

// FilteredBlogPosts returns the cached posts matching the current filters.
func (c *DashboardController) FilteredBlogPosts() []entities.BlogPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterBlogPosts(c.blog.Items(), c.searchQuery, c.filterStatus)
}

// TeamMembers returns the cached team in display order.
func (c *DashboardController) TeamMembers() []entities.TeamMember {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.team.Items()
}

// Snapshot returns the filtered views, modal states and stats in one read.
func (c *DashboardController) Snapshot() DashboardSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DashboardSnapshot{
		Loading:      c.loading,
		SearchQuery:  c.searchQuery,
		FilterStatus: c.filterStatus,
		Tab:          c.tab,
		Waitlist:     FilterWaitlist(c.waitlist.Items(), c.searchQuery, c.filterStatus),
		Team:         c.team.Items(),
		BlogPosts:    FilterBlogPosts(c.blog.Items(), c.searchQuery, c.filterStatus),
		TeamModal:    c.teamModal.state(),
		BlogModal:    c.blogModal.state(),
		Stats:        c.statsLocked(),
	}
}

// Stats counts the cached records.
func (c *DashboardController) Stats() entities.DashboardStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *DashboardController) statsLocked() entities.DashboardStats {
	var s entities.DashboardStats
	for _, e := range c.waitlist.items {
		s.WaitlistTotal++
		switch e.Status {
		case entities.WaitlistStatusPending:
			s.WaitlistPending++
		case entities.WaitlistStatusApproved:
			s.WaitlistApproved++
		case entities.WaitlistStatusRemoved:
			s.WaitlistRemoved++
		}
	}
	for _, m := range c.team.items {
		s.TeamTotal++
		if m.IsActive {
			s.TeamActive++
		}
	}
	for _, p := range c.blog.items {
		if p.IsPublished {
			s.BlogPublished++
		} else {
			s.BlogDrafts++
		}
	}
	return s
}

// ExportCSV renders the currently filtered waitlist.
func (c *DashboardController) ExportCSV() CSVExport {
	return ExportWaitlistCSV(c.FilteredWaitlist(), c.now())
}

// patchCached sends patch for a cached record and merges it into the cache on success.
// A second action on the same id while the first is in flight gets ErrSaveInFlight.
func patchCached[E cachedEntity[E]](
	ctx context.Context,
	mu *sync.Mutex,
	busy rowLocks,
	cache *EntityCache[E],
	entity string,
	id uuid.UUID,
	buildPatch func(current E) (entities.Patch, error),
	update func(context.Context, uuid.UUID, entities.Patch) error,
) (E, error) {
	var zero E
	mu.Lock()
	current, ok := cache.Get(id)
	if !ok {
		mu.Unlock()
		return zero, domainerrors.NotFound(entity + " not found")
	}
	if !busy.claim(id) {
		mu.Unlock()
		return zero, domainerrors.ErrSaveInFlight
	}
	mu.Unlock()
	defer func() {
		mu.Lock()
		busy.release(id)
		mu.Unlock()
	}()

	patch, err := buildPatch(current)
	if err != nil {
		return zero, err
	}
	err = update(ctx, id, patch)
	metrics.RecordMutation(entity, "update", err)
	if err != nil {
		logger.Warn(ctx, "Update failed", zap.String("entity", entity), zap.String("id", id.String()), zap.Error(err))
		return zero, err
	}

	mu.Lock()
	cache.Merge(id, patch)
	updated, _ := cache.Get(id)
	mu.Unlock()
	return updated, nil
}

// removeCached asks for confirmation, hard deletes id and drops it from the cache.
func removeCached[E cachedEntity[E]](
	ctx context.Context,
	mu *sync.Mutex,
	busy rowLocks,
	cache *EntityCache[E],
	entity string,
	id uuid.UUID,
	prompt string,
	confirm Confirmer,
	remove func(context.Context, uuid.UUID) error,
) (bool, error) {
	mu.Lock()
	_, ok := cache.Get(id)
	mu.Unlock()
	if !ok {
		return false, domainerrors.NotFound(entity + " not found")
	}
	if confirm == nil || !confirm.Confirm(prompt) {
		return false, nil
	}

	mu.Lock()
	claimed := busy.claim(id)
	mu.Unlock()
	if !claimed {
		return false, domainerrors.ErrSaveInFlight
	}
	defer func() {
		mu.Lock()
		busy.release(id)
		mu.Unlock()
	}()

	err := remove(ctx, id)
	metrics.RecordMutation(entity, "delete", err)
	if err != nil {
		logger.Warn(ctx, "Delete failed", zap.String("entity", entity), zap.String("id", id.String()), zap.Error(err))
		return false, err
	}

	mu.Lock()
	cache.Remove(id)
	mu.Unlock()
	return true, nil
}

func (c *DashboardController) setEntryStatus(ctx context.Context, id uuid.UUID, status entities.WaitlistStatus) (entities.WaitlistEntry, error) {
	return patchCached(c.scope(ctx), &c.mu, c.rowsInFlight, c.waitlist, entityWaitlist, id,
		func(entities.WaitlistEntry) (entities.Patch, error) {
			return entities.WaitlistStatusPatch(status, c.now()), nil
		},
		c.waitlistRepo.Update,
	)
}

// Approve marks an entry approved and stamps approved_at.
func (c *DashboardController) Approve(ctx context.Context, id uuid.UUID) (entities.WaitlistEntry, error) {
	return c.setEntryStatus(ctx, id, entities.WaitlistStatusApproved)
}

// RemoveEntry soft-removes an entry and clears approved_at.
func (c *DashboardController) RemoveEntry(ctx context.Context, id uuid.UUID) (entities.WaitlistEntry, error) {
	return c.setEntryStatus(ctx, id, entities.WaitlistStatusRemoved)
}

// DeleteEntry permanently deletes a waitlist entry after confirmation.
func (c *DashboardController) DeleteEntry(ctx context.Context, id uuid.UUID, confirm Confirmer) (bool, error) {
	return removeCached(c.scope(ctx), &c.mu, c.rowsInFlight, c.waitlist, entityWaitlist, id, PromptDeleteEntry, confirm, c.waitlistRepo.Remove)
}

// DeleteTeamMember deletes a team member after confirmation.
func (c *DashboardController) DeleteTeamMember(ctx context.Context, id uuid.UUID, confirm Confirmer) (bool, error) {
	return removeCached(c.scope(ctx), &c.mu, c.rowsInFlight, c.team, entityTeam, id, PromptDeleteTeamMember, confirm, c.teamRepo.Remove)
}

// DeleteBlogPost deletes a blog post after confirmation.
func (c *DashboardController) DeleteBlogPost(ctx context.Context, id uuid.UUID, confirm Confirmer) (bool, error) {
	return removeCached(c.scope(ctx), &c.mu, c.rowsInFlight, c.blog, entityBlog, id, PromptDeleteBlogPost, confirm, c.blogRepo.Remove)
}

// TogglePublish flips the published flag of a post.
func (c *DashboardController) TogglePublish(ctx context.Context, id uuid.UUID) (entities.BlogPost, error) {
	return patchCached(c.scope(ctx), &c.mu, c.rowsInFlight, c.blog, entityBlog, id,
		func(current entities.BlogPost) (entities.Patch, error) {
			return entities.TogglePublishPatch(current, c.now()), nil
		},
		c.blogRepo.Update,
	)
}

// OpenNewTeamMember opens the team modal with an empty form.
func (c *DashboardController) OpenNewTeamMember() (ModalState[entities.TeamMemberForm], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.teamModal.openNew(entities.NewTeamMemberForm()); err != nil {
		return c.teamModal.state(), err
	}
	return c.teamModal.state(), nil
}

// OpenEditTeamMember opens the team modal prefilled from the cached member.
func (c *DashboardController) OpenEditTeamMember(id uuid.UUID) (ModalState[entities.TeamMemberForm], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	member, ok := c.team.Get(id)
	if !ok {
		return c.teamModal.state(), domainerrors.NotFound("team member not found")
	}
	if err := c.teamModal.openEdit(id, entities.TeamMemberFormFrom(member)); err != nil {
		return c.teamModal.state(), err
	}
	return c.teamModal.state(), nil
}

// CancelTeamModal closes the team modal unless a save is in flight.
func (c *DashboardController) CancelTeamModal() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teamModal.cancel()
}

// TeamModal returns the team modal state.
func (c *DashboardController) TeamModal() ModalState[entities.TeamMemberForm] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.teamModal.state()
}

// SaveTeamMember creates or updates depending on how the modal was opened.
// New members are appended; on failure the modal stays open with the error.
func (c *DashboardController) SaveTeamMember(ctx context.Context, form entities.TeamMemberForm) (entities.TeamMember, error) {
	ctx = c.scope(ctx)
	c.mu.Lock()
	editingID, err := c.teamModal.begin(form)
	c.mu.Unlock()
	if err != nil {
		return entities.TeamMember{}, err
	}

	if editingID == uuid.Nil {
		created, err := c.teamRepo.Create(ctx, form.Entity())
		metrics.RecordMutation(entityTeam, "create", err)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.teamModal.fail(err)
			return entities.TeamMember{}, err
		}
		c.team.Append(created)
		c.teamModal.close()
		return created, nil
	}

	patch := form.Patch(c.now())
	err = c.teamRepo.Update(ctx, editingID, patch)
	metrics.RecordMutation(entityTeam, "update", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.teamModal.fail(err)
		return entities.TeamMember{}, err
	}
	c.team.Merge(editingID, patch)
	c.teamModal.close()
	updated, _ := c.team.Get(editingID)
	return updated, nil
}

// OpenNewBlogPost opens the blog modal with an empty form.
func (c *DashboardController) OpenNewBlogPost() (ModalState[entities.BlogPostForm], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.blogModal.openNew(entities.NewBlogPostForm()); err != nil {
		return c.blogModal.state(), err
	}
	return c.blogModal.state(), nil
}

// OpenEditBlogPost opens the blog modal prefilled from the cached post.
func (c *DashboardController) OpenEditBlogPost(id uuid.UUID) (ModalState[entities.BlogPostForm], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	post, ok := c.blog.Get(id)
	if !ok {
		return c.blogModal.state(), domainerrors.NotFound("blog post not found")
	}
	if err := c.blogModal.openEdit(id, entities.BlogPostFormFrom(post)); err != nil {
		return c.blogModal.state(), err
	}
	return c.blogModal.state(), nil
}

// CancelBlogModal closes the blog modal unless a save is in flight.
func (c *DashboardController) CancelBlogModal() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blogModal.cancel()
}

// BlogModal returns the blog modal state.
func (c *DashboardController) BlogModal() ModalState[entities.BlogPostForm] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blogModal.state()
}

// SaveBlogPost creates or updates depending on how the modal was opened.
// New posts are prepended. An edit requires a slug.
func (c *DashboardController) SaveBlogPost(ctx context.Context, form entities.BlogPostForm) (entities.BlogPost, error) {
	ctx = c.scope(ctx)
	now := c.now()

	c.mu.Lock()
	if c.blogModal.open && c.blogModal.editingID != uuid.Nil && !c.blogModal.saving && strings.TrimSpace(form.Slug) == "" {
		err := domainerrors.BadRequest("slug is required")
		c.blogModal.form = form
		c.blogModal.err = errorMessage(err)
		c.mu.Unlock()
		return entities.BlogPost{}, err
	}
	editingID, err := c.blogModal.begin(form)
	current, _ := c.blog.Get(editingID)
	c.mu.Unlock()
	if err != nil {
		return entities.BlogPost{}, err
	}

	if editingID == uuid.Nil {
		created, err := c.blogRepo.Create(ctx, form.Entity(now))
		metrics.RecordMutation(entityBlog, "create", err)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.blogModal.fail(err)
			return entities.BlogPost{}, err
		}
		c.blog.Prepend(created)
		c.blogModal.close()
		return created, nil
	}

	patch := form.Patch(current, now)
	err = c.blogRepo.Update(ctx, editingID, patch)
	metrics.RecordMutation(entityBlog, "update", err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.blogModal.fail(err)
		return entities.BlogPost{}, err
	}
	c.blog.Merge(editingID, patch)
	c.blogModal.close()
	updated, _ := c.blog.Get(editingID)
	return updated, nil
}

// Logout signs the session out. The caller discards the controller afterwards.
func (c *DashboardController) Logout(ctx context.Context) error {
	return c.auth.SignOut(ctx, c.session.ID)
}
