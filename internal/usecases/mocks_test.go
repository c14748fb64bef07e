package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stremini.backend/internal/domain/entities"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock WaitlistRepository
type MockWaitlistRepository struct {
	mock.Mock
}

func (m *MockWaitlistRepository) LoadAll(ctx context.Context) ([]entities.WaitlistEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) Create(ctx context.Context, entry entities.WaitlistEntry) (entities.WaitlistEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(entities.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) Update(ctx context.Context, id uuid.UUID, patch entities.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockWaitlistRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) LoadAll(ctx context.Context) ([]entities.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) Create(ctx context.Context, member entities.TeamMember) (entities.TeamMember, error) {
	args := m.Called(ctx, member)
	return args.Get(0).(entities.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) Update(ctx context.Context, id uuid.UUID, patch entities.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockTeamRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeamRepository) ListActive(ctx context.Context) ([]entities.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TeamMember), args.Error(1)
}

// Mock BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) LoadAll(ctx context.Context) ([]entities.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) Create(ctx context.Context, post entities.BlogPost) (entities.BlogPost, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(entities.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, id uuid.UUID, patch entities.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockBlogRepository) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogRepository) ListPublished(ctx context.Context, p utils.PaginationParams) ([]entities.BlogPost, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entities.BlogPost), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entities.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BlogPost), args.Error(1)
}

// Mock AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*entities.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAuthService) GetSession(ctx context.Context, sessionID string) (*entities.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Session), args.Error(1)
}

func (m *MockAuthService) OnSessionChange(ctx context.Context, sessionID string, fn func(entities.SessionChange)) (repositories.Subscription, error) {
	args := m.Called(ctx, sessionID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repositories.Subscription), args.Error(1)
}

// Mock Subscription
type MockSubscription struct {
	mock.Mock
}

func (m *MockSubscription) Unsubscribe() error {
	args := m.Called()
	return args.Error(0)
}

// Mock ElevatedDataService
type MockElevatedDataService struct {
	mock.Mock
}

func (m *MockElevatedDataService) Select(ctx context.Context, collection string, query repositories.Query, dest interface{}) error {
	args := m.Called(ctx, collection, query, dest)
	return args.Error(0)
}

func (m *MockElevatedDataService) Count(ctx context.Context, collection string, query repositories.Query) (int64, error) {
	args := m.Called(ctx, collection, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockElevatedDataService) Insert(ctx context.Context, collection string, record interface{}) error {
	args := m.Called(ctx, collection, record)
	return args.Error(0)
}

func (m *MockElevatedDataService) Update(ctx context.Context, collection string, id uuid.UUID, patch entities.Patch) error {
	args := m.Called(ctx, collection, id, patch)
	return args.Error(0)
}

func (m *MockElevatedDataService) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockElevatedDataService) ListIdentities(ctx context.Context) ([]entities.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Identity), args.Error(1)
}

func (m *MockElevatedDataService) CreateIdentity(ctx context.Context, email string, opts entities.CreateIdentityOptions) (*entities.Identity, error) {
	args := m.Called(ctx, email, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockElevatedDataService) GetRoles(ctx context.Context, userID uuid.UUID) ([]entities.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Role), args.Error(1)
}

func (m *MockElevatedDataService) UpsertRoles(ctx context.Context, userID uuid.UUID, roles []entities.Role) error {
	args := m.Called(ctx, userID, roles)
	return args.Error(0)
}

// Mock EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, serviceID, templateID string, variables map[string]string, creds repositories.EmailCredentials) (int, error) {
	args := m.Called(ctx, serviceID, templateID, variables, creds)
	return args.Int(0), args.Error(1)
}
