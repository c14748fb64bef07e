package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stremini.backend/internal/config"
	"stremini.backend/internal/domain/entities"
	domainerrors "stremini.backend/internal/domain/errors"
	"stremini.backend/internal/domain/repositories"
	"stremini.backend/internal/infrastructure/metrics"
	"stremini.backend/pkg/logger"
)

// DefaultWaitlistSource tags signups that do not name their origin
const DefaultWaitlistSource = "website"

const noWishlistText = "No features selected"

// WaitlistSignupUsecase handles the public waitlist form
type WaitlistSignupUsecase struct {
	waitlistRepo repositories.WaitlistRepository
	sender       repositories.EmailSender
	email        config.EmailConfig
}

func NewWaitlistSignupUsecase(waitlistRepo repositories.WaitlistRepository, sender repositories.EmailSender, email config.EmailConfig) *WaitlistSignupUsecase {
	return &WaitlistSignupUsecase{
		waitlistRepo: waitlistRepo,
		sender:       sender,
		email:        email,
	}
}

// FormatWishlist renders features as "A, B and C".
func FormatWishlist(features []string) string {
	items := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	switch len(items) {
	case 0:
		return noWishlistText
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// Join stores a pending entry and sends the confirmation email. A failed email does
// not undo the signup.
func (u *WaitlistSignupUsecase) Join(ctx context.Context, input *entities.JoinWaitlistInput) (entities.WaitlistEntry, error) {
	if !u.email.Configured() || u.sender == nil {
		logger.Error(ctx, "Waitlist email is not configured")
		return entities.WaitlistEntry{}, domainerrors.ConfigurationError()
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return entities.WaitlistEntry{}, domainerrors.BadRequest("email is required")
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = DefaultWaitlistSource
	}
	name := strings.TrimSpace(input.Name)

	entry, err := u.waitlistRepo.Create(ctx, entities.WaitlistEntry{
		Email:    email,
		Name:     name,
		Status:   entities.WaitlistStatusPending,
		Source:   source,
		Wishlist: input.Wishlist,
	})
	metrics.RecordSignup(err)
	if err != nil {
		return entities.WaitlistEntry{}, err
	}

	toName := name
	if toName == "" {
		toName = email
	}
	status, err := u.sender.Send(ctx, u.email.ServiceID, u.email.TemplateID, map[string]string{
		"to_email": email,
		"to_name":  toName,
		"wishlist": FormatWishlist(input.Wishlist),
	}, repositories.EmailCredentials{
		PublicKey:  u.email.PublicKey,
		PrivateKey: u.email.PrivateKey,
	})
	metrics.RecordEmail(err)
	if err != nil {
		logger.Error(ctx, "Failed to send waitlist confirmation",
			zap.String("entry_id", entry.ID.String()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return entry, nil
}
