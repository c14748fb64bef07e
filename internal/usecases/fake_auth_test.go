package usecases_test

import (
	"context"
	"sync"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/domain/repositories"
)

// fakeAuth delivers session changes on a goroutine per subscription, like the Pub/Sub backed service.
type fakeAuth struct {
	mu       sync.Mutex
	sessions map[string]*entities.Session
	subs     map[string][]*fakeSubscription
}

func newFakeAuth(sessions ...*entities.Session) *fakeAuth {
	a := &fakeAuth{sessions: map[string]*entities.Session{}, subs: map[string][]*fakeSubscription{}}
	for _, s := range sessions {
		a.sessions[s.ID] = s
	}
	return a
}

func (a *fakeAuth) SignIn(context.Context, string, string) (*entities.Session, error) {
	return nil, nil
}

func (a *fakeAuth) SignOut(_ context.Context, sessionID string) error {
	a.mu.Lock()
	delete(a.sessions, sessionID)
	subs := append([]*fakeSubscription(nil), a.subs[sessionID]...)
	a.mu.Unlock()
	for _, s := range subs {
		s.deliver(entities.SessionChange{Event: entities.SessionEventSignedOut})
	}
	return nil
}

func (a *fakeAuth) GetSession(_ context.Context, sessionID string) (*entities.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[sessionID], nil
}

func (a *fakeAuth) OnSessionChange(_ context.Context, sessionID string, fn func(entities.SessionChange)) (repositories.Subscription, error) {
	s := &fakeSubscription{events: make(chan entities.SessionChange, 8), stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(s.done)
		for {
			select {
			case change := <-s.events:
				fn(change)
			case <-s.stop:
				return
			}
		}
	}()
	a.mu.Lock()
	a.subs[sessionID] = append(a.subs[sessionID], s)
	a.mu.Unlock()
	return s, nil
}

func (a *fakeAuth) subscriptions(sessionID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, s := range a.subs[sessionID] {
		if !s.closed() {
			n++
		}
	}
	return n
}

type fakeSubscription struct {
	events chan entities.SessionChange
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (s *fakeSubscription) deliver(change entities.SessionChange) {
	select {
	case s.events <- change:
	case <-s.stop:
	}
}

func (s *fakeSubscription) closed() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *fakeSubscription) Unsubscribe() error {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}
