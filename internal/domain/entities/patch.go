package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Patch is a field-level partial update keyed by column name.
type Patch map[string]interface{}

// Column names shared by patches, filters and orderings.
const (
	FieldID               = "id"
	FieldEmail            = "email"
	FieldName             = "name"
	FieldStatus           = "status"
	FieldSource           = "source"
	FieldWishlist         = "wishlist"
	FieldNotes            = "notes"
	FieldApprovedAt       = "approved_at"
	FieldRole             = "role"
	FieldCategory         = "category"
	FieldImageURL         = "image_url"
	FieldLinkedInURL      = "linkedin_url"
	FieldTwitterURL       = "twitter_url"
	FieldInstagramURL     = "instagram_url"
	FieldDisplayOrder     = "display_order"
	FieldIsActive         = "is_active"
	FieldTitle            = "title"
	FieldSlug             = "slug"
	FieldExcerpt          = "excerpt"
	FieldContent          = "content"
	FieldAuthor           = "author"
	FieldFeaturedImageURL = "featured_image_url"
	FieldTags             = "tags"
	FieldIsPublished      = "is_published"
	FieldPublishedAt      = "published_at"
	FieldCreatedAt        = "created_at"
	FieldUpdatedAt        = "updated_at"
)

// Has reports whether the patch touches field.
func (p Patch) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// Clone returns a shallow copy.
func (p Patch) Clone() Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func patchString(v interface{}, fallback string) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	case null.String:
		if s.Valid {
			return s.String
		}
		return ""
	case nil:
		return ""
	}
	return fallback
}

func patchInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

func patchBool(v interface{}, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func patchTime(v interface{}, fallback time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case null.Time:
		if t.Valid {
			return t.Time
		}
	}
	return fallback
}

func patchNullTime(v interface{}) null.Time {
	switch t := v.(type) {
	case time.Time:
		return null.TimeFrom(t)
	case *time.Time:
		return null.TimeFromPtr(t)
	case null.Time:
		return t
	}
	return null.Time{}
}

func patchStrings(v interface{}, fallback []string) []string {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case nil:
		return nil
	}
	return fallback
}
