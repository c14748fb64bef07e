package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stremini.backend/internal/config"
	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/usecases"
)

var testEmailConfig = config.EmailConfig{
	ServiceID:  "service_1",
	TemplateID: "template_1",
	PublicKey:  "pub",
	PrivateKey: "priv",
}

func TestFormatWishlist(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{nil, "No features selected"},
		{[]string{" ", ""}, "No features selected"},
		{[]string{"Playlists"}, "Playlists"},
		{[]string{"Playlists", "Offline mode"}, "Playlists and Offline mode"},
		{[]string{"A", "B", "C"}, "A, B and C"},
		{[]string{"A", " B ", "", "C", "D"}, "A, B, C and D"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, usecases.FormatWishlist(tc.in))
	}
}

func TestWaitlistSignup_Join(t *testing.T) {
	repo := new(MockWaitlistRepository)
	sender := new(MockEmailSender)
	uc := usecases.NewWaitlistSignupUsecase(repo, sender, testEmailConfig)

	stored := entities.WaitlistEntry{ID: uuid.New(), Email: "fan@example.com", Name: "Fan", Status: entities.WaitlistStatusPending, Source: usecases.DefaultWaitlistSource}
	repo.On("Create", mock.Anything, entities.WaitlistEntry{
		Email:    "fan@example.com",
		Name:     "Fan",
		Status:   entities.WaitlistStatusPending,
		Source:   usecases.DefaultWaitlistSource,
		Wishlist: []string{"A", "B", "C"},
	}).Return(stored, nil).Once()
	sender.On("Send", mock.Anything, "service_1", "template_1", map[string]string{
		"to_email": "fan@example.com",
		"to_name":  "Fan",
		"wishlist": "A, B and C",
	}, repositories.EmailCredentials{PublicKey: "pub", PrivateKey: "priv"}).Return(200, nil).Once()

	got, err := uc.Join(context.Background(), &entities.JoinWaitlistInput{Email: " fan@example.com ", Name: "Fan", Wishlist: []string{"A", "B", "C"}})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestWaitlistSignup_EmailFailureKeepsSignup(t *testing.T) {
	repo := new(MockWaitlistRepository)
	sender := new(MockEmailSender)
	uc := usecases.NewWaitlistSignupUsecase(repo, sender, testEmailConfig)

	stored := entities.WaitlistEntry{ID: uuid.New(), Email: "fan@example.com"}
	repo.On("Create", mock.Anything, mock.Anything).Return(stored, nil).Once()
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(v map[string]string) bool {
		return v["to_name"] == "fan@example.com" && v["wishlist"] == "No features selected"
	}), mock.Anything).Return(422, errors.New("template not found")).Once()

	got, err := uc.Join(context.Background(), &entities.JoinWaitlistInput{Email: "fan@example.com", Source: "tiktok"})
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	repo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestWaitlistSignup_ConfigurationError(t *testing.T) {
	repo := new(MockWaitlistRepository)
	uc := usecases.NewWaitlistSignupUsecase(repo, new(MockEmailSender), config.EmailConfig{ServiceID: "service_1"})

	_, err := uc.Join(context.Background(), &entities.JoinWaitlistInput{Email: "fan@example.com"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "configuration error", appErr.Message)
	assert.ErrorIs(t, err, domainerrors.ErrConfiguration)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWaitlistSignup_DuplicateEmail(t *testing.T) {
	repo := new(MockWaitlistRepository)
	sender := new(MockEmailSender)
	uc := usecases.NewWaitlistSignupUsecase(repo, sender, testEmailConfig)

	repo.On("Create", mock.Anything, mock.Anything).Return(entities.WaitlistEntry{}, domainerrors.Conflict("record already exists")).Once()

	_, err := uc.Join(context.Background(), &entities.JoinWaitlistInput{Email: "fan@example.com"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
