package services

import (
	"fmt"
	"io"
	"path"

	"pcforge/internal/domain"
	"pcforge/internal/repos"
	"pcforge/internal/storage"
	"pcforge/internal/validate"
)

type PresetService struct {
	Repo   *repos.PresetRepo
	Compat *CompatService
	Store  storage.Storage
}

func NewPresetService(repo *repos.PresetRepo, compat *CompatService, store storage.Storage) *PresetService {
	return &PresetService{Repo: repo, Compat: compat, Store: store}
}

func (s *PresetService) List() ([]domain.Preset, error) { return s.Repo.List() }

func (s *PresetService) Get(id string) (domain.Preset, error) { return s.Repo.Get(id) }

func (s *PresetService) Create(p *domain.Preset) error {
	if err := s.check(p); err != nil {
		return err
	}
	return s.Repo.Create(p)
}

func (s *PresetService) Update(p *domain.Preset) error {
	if _, ok := validate.ID(p.ID); !ok {
		return invalid("id", "malformed")
	}
	if err := s.check(p); err != nil {
		return err
	}
	return s.Repo.Update(p)
}

func (s *PresetService) Delete(id string) error {
	p, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	removeImage(s.Store, p.ImageURL)
	return nil
}

func (s *PresetService) SetImage(id string, data io.Reader, contentType string) (string, error) {
	p, err := s.Repo.Get(id)
	if err != nil {
		return "", err
	}
	url, err := saveImage(s.Store, path.Join("presets", id), data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateImageURL(id, url); err != nil {
		removeImage(s.Store, url)
		return "", err
	}
	removeImage(s.Store, p.ImageURL)
	return url, nil
}

// check applies the same gates as the preset editor: every category filled
// and no outstanding compatibility warning.
func (s *PresetService) check(p *domain.Preset) error {
	name, ok := validate.Name(p.Name)
	if !ok {
		return invalid("name", "required, at most 120 characters")
	}
	p.Name = name
	cat, ok := validate.PresetCategory(p.Category)
	if !ok {
		return invalid("category", "must be workstation or office")
	}
	p.Category = cat
	if !validate.Price(p.BasePrice) {
		return invalid("basePrice", "must be a non-negative amount")
	}
	if len(p.Components.Missing()) > 0 {
		return ErrPresetIncomplete
	}
	p.Components = p.Components.Clone()
	sel, err := s.Compat.load(p.Components)
	if err != nil {
		return err
	}
	for _, c := range domain.PresetCategories {
		got, ok := sel[c]
		if !ok {
			return invalid(string(c), fmt.Sprintf("component %q not found", p.Components[c]))
		}
		if got.Category != c {
			return invalid(string(c), fmt.Sprintf("component %q is a %s", got.ID, got.Category))
		}
	}
	if warnings := s.Compat.evaluate(sel); len(warnings) > 0 {
		return ErrIncompatible
	}
	return nil
}
