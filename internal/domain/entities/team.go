package entities

import (
	"time"

	"github.com/google/uuid"
)

// TeamCategory groups team members on the public page
type TeamCategory string

const (
	TeamCategoryFounder   TeamCategory = "founder"
	TeamCategoryCoFounder TeamCategory = "co-founder"
	TeamCategoryDeveloper TeamCategory = "developer"
	TeamCategoryMarketing TeamCategory = "marketing"
	TeamCategoryResearch  TeamCategory = "research"
)

// DefaultTeamCategory pre-fills the create form
const DefaultTeamCategory = TeamCategoryDeveloper

var teamCategories = enumTable[TeamCategory]{
	{TeamCategoryFounder, "Founder"},
	{TeamCategoryCoFounder, "Co-Founder"},
	{TeamCategoryDeveloper, "Developer"},
	{TeamCategoryMarketing, "Marketing"},
	{TeamCategoryResearch, "Research"},
}

// TeamCategories lists every legal category in display order
func TeamCategories() []TeamCategory { return teamCategories.values() }

func (c TeamCategory) Valid() bool    { return teamCategories.has(c) }
func (c TeamCategory) Label() string  { return teamCategories.label(c) }
func (c TeamCategory) String() string { return string(c) }

// TeamMember is a person shown in the team directory
type TeamMember struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Category     TeamCategory `json:"category"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	LinkedInURL  string       `json:"linkedinUrl,omitempty"`
	TwitterURL   string       `json:"twitterUrl,omitempty"`
	InstagramURL string       `json:"instagramUrl,omitempty"`
	DisplayOrder int          `json:"displayOrder"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (m TeamMember) EntityID() uuid.UUID { return m.ID }

// Apply merges patch into a copy of the member.
func (m TeamMember) Apply(p Patch) TeamMember {
	out := m
	for field, v := range p {
		switch field {
		case FieldName:
			out.Name = patchString(v, out.Name)
		case FieldRole:
			out.Role = patchString(v, out.Role)
		case FieldCategory:
			switch c := v.(type) {
			case TeamCategory:
				out.Category = c
			case string:
				out.Category = TeamCategory(c)
			}
		case FieldImageURL:
			out.ImageURL = patchString(v, out.ImageURL)
		case FieldLinkedInURL:
			out.LinkedInURL = patchString(v, out.LinkedInURL)
		case FieldTwitterURL:
			out.TwitterURL = patchString(v, out.TwitterURL)
		case FieldInstagramURL:
			out.InstagramURL = patchString(v, out.InstagramURL)
		case FieldDisplayOrder:
			out.DisplayOrder = patchInt(v, out.DisplayOrder)
		case FieldIsActive:
			out.IsActive = patchBool(v, out.IsActive)
		case FieldCreatedAt:
			out.CreatedAt = patchTime(v, out.CreatedAt)
		case FieldUpdatedAt:
			out.UpdatedAt = patchTime(v, out.UpdatedAt)
		}
	}
	return out
}

// TeamMemberForm is the editable shape of a team member
type TeamMemberForm struct {
	Name         string       `json:"name" binding:"required,max=200"`
	Role         string       `json:"role" binding:"max=200"`
	Category     TeamCategory `json:"category" binding:"required,team_category"`
	ImageURL     string       `json:"imageUrl" binding:"omitempty,url"`
	LinkedInURL  string       `json:"linkedinUrl" binding:"omitempty,url"`
	TwitterURL   string       `json:"twitterUrl" binding:"omitempty,url"`
	InstagramURL string       `json:"instagramUrl" binding:"omitempty,url"`
	DisplayOrder int          `json:"displayOrder"`
	IsActive     bool         `json:"isActive"`
}

// NewTeamMemberForm returns the defaults used when creating a member
func NewTeamMemberForm() TeamMemberForm {
	return TeamMemberForm{Category: DefaultTeamCategory, IsActive: true}
}

// TeamMemberFormFrom pre-populates a form from an existing member
func TeamMemberFormFrom(m TeamMember) TeamMemberForm {
	return TeamMemberForm{
		Name:         m.Name,
		Role:         m.Role,
		Category:     m.Category,
		ImageURL:     m.ImageURL,
		LinkedInURL:  m.LinkedInURL,
		TwitterURL:   m.TwitterURL,
		InstagramURL: m.InstagramURL,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
	}
}

// Entity builds the record to insert
func (f TeamMemberForm) Entity() TeamMember {
	return TeamMember{
		Name:         f.Name,
		Role:         f.Role,
		Category:     f.Category,
		ImageURL:     f.ImageURL,
		LinkedInURL:  f.LinkedInURL,
		TwitterURL:   f.TwitterURL,
		InstagramURL: f.InstagramURL,
		DisplayOrder: f.DisplayOrder,
		IsActive:     f.IsActive,
	}
}

// Patch builds the edit patch, stamping updated_at with now.
func (f TeamMemberForm) Patch(now time.Time) Patch {
	return Patch{
		FieldName:         f.Name,
		FieldRole:         f.Role,
		FieldCategory:     f.Category,
		FieldImageURL:     f.ImageURL,
		FieldLinkedInURL:  f.LinkedInURL,
		FieldTwitterURL:   f.TwitterURL,
		FieldInstagramURL: f.InstagramURL,
		FieldDisplayOrder: f.DisplayOrder,
		FieldIsActive:     f.IsActive,
		FieldUpdatedAt:    now,
	}
}
