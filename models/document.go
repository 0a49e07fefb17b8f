package models

import "time"

// DocumentKind discriminates the two document families the builder manages.
type DocumentKind string

const (
	KindCV          DocumentKind = "cv"
	KindCoverLetter DocumentKind = "cover_letter"
)

// Document is the root aggregate for a CV or a cover letter.
// It is the unit of persistence on every layer: the in-memory store,
// the local cache and the server row all share the same shape and are
// joined by ID.
type Document struct {
	// ID is the client-generated identifier of the document. It is minted
	// once at creation time and never changes; the server stores it as-is.
	ID string `json:"id"`

	// UserID is the owner of the document. Assigned server-side from the
	// authenticated request; zero for documents that never left the client.
	UserID int64 `json:"user_id,omitempty"`

	// Kind tells whether Content carries CV or cover-letter data.
	Kind DocumentKind `json:"kind"`

	// Title is the human-readable name shown in the document list.
	Title string `json:"title"`

	// TemplateID selects the visual template used for preview/export.
	TemplateID string `json:"template_id,omitempty"`

	// Views counts public page views of a shared CV.
	Views int `json:"views"`

	// Public controls whether the document is reachable via a share link.
	Public bool `json:"public"`

	// SectionOrder overrides the default display order of CV sections.
	// Empty means insertion order.
	SectionOrder []string `json:"section_order,omitempty"`

	// Style holds per-document presentation settings.
	Style Style `json:"style"`

	// CV is populated when Kind == KindCV.
	CV *CVContent `json:"cv,omitempty"`

	// Letter is populated when Kind == KindCoverLetter.
	Letter *LetterContent `json:"letter,omitempty"`

	// CreatedAt is stamped once when the document skeleton is built.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every mutation, local or server-side.
	UpdatedAt time.Time `json:"updated_at"`
}

// Style groups the presentation settings a user can tweak per document.
type Style struct {
	AccentColor string `json:"accent_color,omitempty"`
	FontFamily  string `json:"font_family,omitempty"`
	FontSize    int    `json:"font_size,omitempty"`
	PaperSize   string `json:"paper_size,omitempty"`
}

// TableName returns the name of the database table
// associated with the Document model.
func (d *Document) TableName() string {
	return "documents"
}

// IsCV reports whether the document carries CV content.
func (d *Document) IsCV() bool {
	return d.Kind == KindCV
}

// Clone returns a deep copy of the document. Callers get an isolated value
// they can read or mutate without racing the store's own copy.
func (d *Document) Clone() Document {
	c := *d
	c.SectionOrder = append([]string(nil), d.SectionOrder...)

	if d.CV != nil {
		cv := *d.CV
		cv.Experiences = append([]Experience(nil), d.CV.Experiences...)
		cv.Educations = append([]Education(nil), d.CV.Educations...)
		cv.Skills = append([]Skill(nil), d.CV.Skills...)
		cv.Languages = append([]Language(nil), d.CV.Languages...)
		cv.Hobbies = append([]Hobby(nil), d.CV.Hobbies...)
		cv.Certifications = append([]Certification(nil), d.CV.Certifications...)
		cv.Projects = append([]Project(nil), d.CV.Projects...)
		cv.References = append([]Reference(nil), d.CV.References...)
		cv.Qualities = append([]Quality(nil), d.CV.Qualities...)
		cv.SocialLinks = append([]SocialLink(nil), d.CV.SocialLinks...)
		c.CV = &cv
	}

	if d.Letter != nil {
		letter := *d.Letter
		c.Letter = &letter
	}

	return c
}
