package service

import (
	"context"

	"github.com/avoronov/go-cv-builder/models"
)

// Per-collection mutators of the current CV. Each triple delegates to the
// generic helpers in client_service_items.go; the shape is identical for
// all ten collections, only the slice accessor differs.

func (s *documentStore) AddExperience(ctx context.Context, item models.Experience) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Experiences, id = appendItem(s.uuid, doc.CV.Experiences, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateExperience(ctx context.Context, id string, patch models.Experience) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Experiences, id, patch))
	})
}

func (s *documentStore) RemoveExperience(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Experience](&doc.CV.Experiences, id)
	})
}

func (s *documentStore) AddEducation(ctx context.Context, item models.Education) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Educations, id = appendItem(s.uuid, doc.CV.Educations, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateEducation(ctx context.Context, id string, patch models.Education) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Educations, id, patch))
	})
}

func (s *documentStore) RemoveEducation(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Education](&doc.CV.Educations, id)
	})
}

func (s *documentStore) AddSkill(ctx context.Context, item models.Skill) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		item.Level = clampLevel(item.Level)
		doc.CV.Skills, id = appendItem(s.uuid, doc.CV.Skills, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateSkill(ctx context.Context, id string, patch models.Skill) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		if patch.Level != 0 {
			patch.Level = clampLevel(patch.Level)
		}
		return mergeOrNoChange(mergeItem(doc.CV.Skills, id, patch))
	})
}

func (s *documentStore) RemoveSkill(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Skill](&doc.CV.Skills, id)
	})
}

func (s *documentStore) AddLanguage(ctx context.Context, item models.Language) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		item.Level = clampLevel(item.Level)
		doc.CV.Languages, id = appendItem(s.uuid, doc.CV.Languages, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateLanguage(ctx context.Context, id string, patch models.Language) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		if patch.Level != 0 {
			patch.Level = clampLevel(patch.Level)
		}
		return mergeOrNoChange(mergeItem(doc.CV.Languages, id, patch))
	})
}

func (s *documentStore) RemoveLanguage(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Language](&doc.CV.Languages, id)
	})
}

func (s *documentStore) AddHobby(ctx context.Context, item models.Hobby) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Hobbies, id = appendItem(s.uuid, doc.CV.Hobbies, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateHobby(ctx context.Context, id string, patch models.Hobby) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Hobbies, id, patch))
	})
}

func (s *documentStore) RemoveHobby(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Hobby](&doc.CV.Hobbies, id)
	})
}

func (s *documentStore) AddCertification(ctx context.Context, item models.Certification) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Certifications, id = appendItem(s.uuid, doc.CV.Certifications, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateCertification(ctx context.Context, id string, patch models.Certification) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Certifications, id, patch))
	})
}

func (s *documentStore) RemoveCertification(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Certification](&doc.CV.Certifications, id)
	})
}

func (s *documentStore) AddProject(ctx context.Context, item models.Project) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Projects, id = appendItem(s.uuid, doc.CV.Projects, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateProject(ctx context.Context, id string, patch models.Project) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Projects, id, patch))
	})
}

func (s *documentStore) RemoveProject(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Project](&doc.CV.Projects, id)
	})
}

func (s *documentStore) AddReference(ctx context.Context, item models.Reference) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.References, id = appendItem(s.uuid, doc.CV.References, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateReference(ctx context.Context, id string, patch models.Reference) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.References, id, patch))
	})
}

func (s *documentStore) RemoveReference(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Reference](&doc.CV.References, id)
	})
}

func (s *documentStore) AddQuality(ctx context.Context, item models.Quality) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.Qualities, id = appendItem(s.uuid, doc.CV.Qualities, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateQuality(ctx context.Context, id string, patch models.Quality) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.Qualities, id, patch))
	})
}

func (s *documentStore) RemoveQuality(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.Quality](&doc.CV.Qualities, id)
	})
}

func (s *documentStore) AddSocialLink(ctx context.Context, item models.SocialLink) (string, error) {
	var id string
	err := s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		doc.CV.SocialLinks, id = appendItem(s.uuid, doc.CV.SocialLinks, item)
		return nil
	})
	return id, err
}

func (s *documentStore) UpdateSocialLink(ctx context.Context, id string, patch models.SocialLink) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return mergeOrNoChange(mergeItem(doc.CV.SocialLinks, id, patch))
	})
}

func (s *documentStore) RemoveSocialLink(ctx context.Context, id string) error {
	return s.mutateCurrent(ctx, models.KindCV, func(doc *models.Document) error {
		return removeOrNoChange[models.SocialLink](&doc.CV.SocialLinks, id)
	})
}

// mergeOrNoChange converts the "record not found" result of mergeItem into
// the errNoChange signal understood by applyLocked.
func mergeOrNoChange(found bool, err error) error {
	if err != nil {
		return err
	}
	if !found {
		return errNoChange
	}
	return nil
}

// removeOrNoChange filters the record with the given ID out of the list.
// An absent ID leaves the list untouched and reports errNoChange, so a
// repeated removal produces exactly the same state as a single one.
func removeOrNoChange[T any, PT itemRecord[T]](list *[]T, id string) error {
	before := len(*list)
	*list = filterItem[T, PT](*list, id)
	if len(*list) == before {
		return errNoChange
	}
	return nil
}

func clampLevel(level int) int {
	if level < models.LevelMin {
		return models.LevelMin
	}
	if level > models.LevelMax {
		return models.LevelMax
	}
	return level
}
