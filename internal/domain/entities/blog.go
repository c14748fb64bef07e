package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DefaultBlogAuthor is used when a post is saved without an author
const DefaultBlogAuthor = "Stremini Team"

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

// BlogPost is a CMS article
type BlogPost struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Excerpt          string    `json:"excerpt,omitempty"`
	Content          string    `json:"content"`
	Author           string    `json:"author"`
	FeaturedImageURL string    `json:"featuredImageUrl,omitempty"`
	Tags             []string  `json:"tags"`
	IsPublished      bool      `json:"isPublished"`
	PublishedAt      null.Time `json:"publishedAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (p BlogPost) EntityID() uuid.UUID { return p.ID }

// Slugify lowercases title, collapses every non-alphanumeric run into one hyphen and trims hyphens.
func Slugify(title string) string {
	slug := slugSeparator.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// ParseTags splits a comma separated list, trimming entries and dropping empties.
func ParseTags(input string) []string {
	tags := []string{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Apply merges patch into a copy of the post.
func (p BlogPost) Apply(patch Patch) BlogPost {
	out := p
	out.Tags = append([]string(nil), p.Tags...)
	for field, v := range patch {
		switch field {
		case FieldTitle:
			out.Title = patchString(v, out.Title)
		case FieldSlug:
			out.Slug = patchString(v, out.Slug)
		case FieldExcerpt:
			out.Excerpt = patchString(v, out.Excerpt)
		case FieldContent:
			out.Content = patchString(v, out.Content)
		case FieldAuthor:
			out.Author = patchString(v, out.Author)
		case FieldFeaturedImageURL:
			out.FeaturedImageURL = patchString(v, out.FeaturedImageURL)
		case FieldTags:
			out.Tags = patchStrings(v, out.Tags)
		case FieldIsPublished:
			out.IsPublished = patchBool(v, out.IsPublished)
		case FieldPublishedAt:
			out.PublishedAt = patchNullTime(v)
		case FieldCreatedAt:
			out.CreatedAt = patchTime(v, out.CreatedAt)
		case FieldUpdatedAt:
			out.UpdatedAt = patchTime(v, out.UpdatedAt)
		}
	}
	return out
}

// TogglePublishPatch flips is_published. published_at is stamped only when the post
// becomes published and is left as is when it is unpublished.
func TogglePublishPatch(p BlogPost, now time.Time) Patch {
	patch := Patch{
		FieldIsPublished: !p.IsPublished,
		FieldUpdatedAt:   now,
	}
	if !p.IsPublished {
		patch[FieldPublishedAt] = null.TimeFrom(now)
	}
	return patch
}

// BlogPostForm is the editable shape of a post; Tags is the raw comma separated input.
type BlogPostForm struct {
	Title            string `json:"title" binding:"required,max=300"`
	Slug             string `json:"slug" binding:"max=300"`
	Excerpt          string `json:"excerpt"`
	Content          string `json:"content"`
	Author           string `json:"author" binding:"max=200"`
	FeaturedImageURL string `json:"featuredImageUrl" binding:"omitempty,url"`
	Tags             string `json:"tags"`
	IsPublished      bool   `json:"isPublished"`
}

// NewBlogPostForm returns the defaults used when creating a post
func NewBlogPostForm() BlogPostForm {
	return BlogPostForm{Author: DefaultBlogAuthor}
}

// BlogPostFormFrom pre-populates a form from an existing post
func BlogPostFormFrom(p BlogPost) BlogPostForm {
	return BlogPostForm{
		Title:            p.Title,
		Slug:             p.Slug,
		Excerpt:          p.Excerpt,
		Content:          p.Content,
		Author:           p.Author,
		FeaturedImageURL: p.FeaturedImageURL,
		Tags:             strings.Join(p.Tags, ", "),
		IsPublished:      p.IsPublished,
	}
}

func (f BlogPostForm) author() string {
	if a := strings.TrimSpace(f.Author); a != "" {
		return a
	}
	return DefaultBlogAuthor
}

// Entity builds the record to insert. The slug is derived from the title only when none was supplied.
func (f BlogPostForm) Entity(now time.Time) BlogPost {
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		slug = Slugify(f.Title)
	}
	post := BlogPost{
		Title:            f.Title,
		Slug:             slug,
		Excerpt:          f.Excerpt,
		Content:          f.Content,
		Author:           f.author(),
		FeaturedImageURL: f.FeaturedImageURL,
		Tags:             ParseTags(f.Tags),
		IsPublished:      f.IsPublished,
	}
	if f.IsPublished {
		post.PublishedAt = null.TimeFrom(now)
	}
	return post
}

// Patch builds the edit patch against the cached post. The slug is taken verbatim.
func (f BlogPostForm) Patch(current BlogPost, now time.Time) Patch {
	patch := Patch{
		FieldTitle:            f.Title,
		FieldSlug:             strings.TrimSpace(f.Slug),
		FieldExcerpt:          f.Excerpt,
		FieldContent:          f.Content,
		FieldAuthor:           f.author(),
		FieldFeaturedImageURL: f.FeaturedImageURL,
		FieldTags:             ParseTags(f.Tags),
		FieldIsPublished:      f.IsPublished,
		FieldUpdatedAt:        now,
	}
	if f.IsPublished && !current.IsPublished {
		patch[FieldPublishedAt] = null.TimeFrom(now)
	}
	return patch
}
