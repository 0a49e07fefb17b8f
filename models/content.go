package models

// CVContent is the structured payload of a CV document: the personal
// header block plus the ordered sub-entity collections that make up the
// individual sections. Slice order is display order unless the parent
// document sets an explicit SectionOrder.
type CVContent struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Footer         Footer          `json:"footer"`
	Divers         string          `json:"divers,omitempty"`
	Experiences    []Experience    `json:"experiences"`
	Educations     []Education     `json:"educations"`
	Skills         []Skill         `json:"skills"`
	Languages      []Language      `json:"languages"`
	Hobbies        []Hobby         `json:"hobbies"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	References     []Reference     `json:"references"`
	Qualities      []Quality       `json:"qualities"`
	SocialLinks    []SocialLink    `json:"social_links"`
}

// PersonalInfo is the header block of a CV.
type PersonalInfo struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Photo     string `json:"photo,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Footer is the free-form footer line rendered under every CV page.
type Footer struct {
	Text    string `json:"text,omitempty"`
	ShowURL bool   `json:"show_url"`
}

// LetterContent is the structured payload of a cover letter.
type LetterContent struct {
	Recipient  string `json:"recipient,omitempty"`
	Company    string `json:"company,omitempty"`
	JobTitle   string `json:"job_title,omitempty"`
	Greeting   string `json:"greeting,omitempty"`
	Intro      string `json:"intro,omitempty"`
	Body       string `json:"body,omitempty"`
	Conclusion string `json:"conclusion,omitempty"`
	Signature  string `json:"signature,omitempty"`
}
