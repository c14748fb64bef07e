package usecases

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/logger"
)

type dashboardEntry struct {
	controller *DashboardController
	guard      *SessionGuard
}

// DashboardRegistry keeps one DashboardController per admin session. An entry is dropped
// when its session signs out, which discards all cached state.
type DashboardRegistry struct {
	auth         repositories.AuthService
	waitlistRepo repositories.WaitlistRepository
	teamRepo     repositories.TeamRepository
	blogRepo     repositories.BlogRepository

	mu      sync.Mutex
	entries map[string]*dashboardEntry
}

func NewDashboardRegistry(
	auth repositories.AuthService,
	waitlistRepo repositories.WaitlistRepository,
	teamRepo repositories.TeamRepository,
	blogRepo repositories.BlogRepository,
) *DashboardRegistry {
	return &DashboardRegistry{
		auth:         auth,
		waitlistRepo: waitlistRepo,
		teamRepo:     teamRepo,
		blogRepo:     blogRepo,
		entries:      make(map[string]*dashboardEntry),
	}
}

// Acquire returns the controller of sessionID, creating and guarding it on first use.
func (r *DashboardRegistry) Acquire(ctx context.Context, sessionID string) (*DashboardController, error) {
	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok && e.guard.State() == entities.SessionAuthenticated {
		r.mu.Unlock()
		return e.controller, nil
	}
	r.mu.Unlock()

	guard := NewSessionGuard(r.auth, sessionID)
	state, err := guard.Start(context.WithoutCancel(ctx))
	if err != nil {
		_ = guard.Close()
		return nil, err
	}
	if state != entities.SessionAuthenticated {
		_ = guard.Close()
		return nil, domainerrors.Unauthorized("no active session")
	}

	controller := NewDashboardController(guard.Session(), r.waitlistRepo, r.teamRepo, r.blogRepo, r.auth)
	guard.OnSignedOut(func() {
		// runs on the subscription goroutine, which Close waits for
		go r.Release(sessionID)
	})

	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok && e.guard.State() == entities.SessionAuthenticated {
		r.mu.Unlock()
		_ = guard.Close()
		return e.controller, nil
	}
	stale := r.entries[sessionID]
	r.entries[sessionID] = &dashboardEntry{controller: controller, guard: guard}
	r.mu.Unlock()

	if stale != nil {
		_ = stale.guard.Close()
	}
	return controller, nil
}

// Release discards the controller of sessionID and closes its subscription.
func (r *DashboardRegistry) Release(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()
	if !ok {
		return
	}
	if err := e.guard.Close(); err != nil {
		logger.Warn(context.Background(), "Failed to close session subscription",
			zap.String(string(logger.SessionIDKey), sessionID), zap.Error(err))
	}
}

// Len reports how many sessions hold a controller.
func (r *DashboardRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close releases every controller, e.g. on shutdown.
func (r *DashboardRegistry) Close() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Release(id)
	}
}
