package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// WaitlistStatus is the lifecycle state of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusApproved WaitlistStatus = "approved"
	WaitlistStatusRemoved  WaitlistStatus = "removed"
)

var waitlistStatuses = enumTable[WaitlistStatus]{
	{WaitlistStatusPending, "Pending"},
	{WaitlistStatusApproved, "Approved"},
	{WaitlistStatusRemoved, "Removed"},
}

// WaitlistStatuses lists every legal status in display order
func WaitlistStatuses() []WaitlistStatus { return waitlistStatuses.values() }

func (s WaitlistStatus) Valid() bool    { return waitlistStatuses.has(s) }
func (s WaitlistStatus) Label() string  { return waitlistStatuses.label(s) }
func (s WaitlistStatus) String() string { return string(s) }

// WaitlistEntry represents a person waiting for access
type WaitlistEntry struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Status     WaitlistStatus `json:"status"`
	Source     string         `json:"source"`
	Wishlist   []string       `json:"wishlist,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	ApprovedAt null.Time      `json:"approvedAt"`
}

// EntityID implements the cache identity contract
func (e WaitlistEntry) EntityID() uuid.UUID { return e.ID }

// WaitlistStatusPatch builds a status change that keeps approved_at in step with status.
func WaitlistStatusPatch(status WaitlistStatus, now time.Time) Patch {
	approvedAt := null.Time{}
	if status == WaitlistStatusApproved {
		approvedAt = null.TimeFrom(now)
	}
	return Patch{
		FieldStatus:     status,
		FieldApprovedAt: approvedAt,
	}
}

// Apply merges patch into a copy of the entry.
func (e WaitlistEntry) Apply(p Patch) WaitlistEntry {
	out := e
	out.Wishlist = append([]string(nil), e.Wishlist...)
	for field, v := range p {
		switch field {
		case FieldEmail:
			out.Email = patchString(v, out.Email)
		case FieldName:
			out.Name = patchString(v, out.Name)
		case FieldStatus:
			switch s := v.(type) {
			case WaitlistStatus:
				out.Status = s
			case string:
				out.Status = WaitlistStatus(s)
			}
		case FieldSource:
			out.Source = patchString(v, out.Source)
		case FieldWishlist:
			out.Wishlist = patchStrings(v, out.Wishlist)
		case FieldNotes:
			out.Notes = patchString(v, out.Notes)
		case FieldApprovedAt:
			out.ApprovedAt = patchNullTime(v)
		case FieldCreatedAt:
			out.CreatedAt = patchTime(v, out.CreatedAt)
		}
	}
	return out
}

// JoinWaitlistInput is the public signup payload
type JoinWaitlistInput struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"max=200"`
	Source   string   `json:"source" binding:"max=100"`
	Wishlist []string `json:"wishlist"`
}
