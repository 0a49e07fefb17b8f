package models

// ItemMeta is embedded by every sub-entity record. It carries the stable,
// client-generated identifier used for targeted update and removal.
// Identifiers are assigned once and never reused within a document.
type ItemMeta struct {
	ID string `json:"id"`
}

// ItemID returns the record identifier.
func (m *ItemMeta) ItemID() string { return m.ID }

// SetItemID assigns the record identifier. Used when minting an ID for a
// freshly added record or when backfilling IDs on imported payloads.
func (m *ItemMeta) SetItemID(id string) { m.ID = id }

// Level bounds for Skill and Language proficiency.
const (
	LevelMin = 1
	LevelMax = 5
)

type Experience struct {
	ItemMeta
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	City        string `json:"city,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	ItemMeta
	School      string `json:"school,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	City        string `json:"city,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

type Skill struct {
	ItemMeta
	Name  string `json:"name,omitempty"`
	Level int    `json:"level,omitempty"`
}

type Language struct {
	ItemMeta
	Name  string `json:"name,omitempty"`
	Level int    `json:"level,omitempty"`
}

type Hobby struct {
	ItemMeta
	Name string `json:"name,omitempty"`
}

type Certification struct {
	ItemMeta
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

type Project struct {
	ItemMeta
	Name        string `json:"name,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

type Reference struct {
	ItemMeta
	Name     string `json:"name,omitempty"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type Quality struct {
	ItemMeta
	Name string `json:"name,omitempty"`
}

type SocialLink struct {
	ItemMeta
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`
}
