package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"

	"pcforge/internal/domain"
	"pcforge/internal/repos"
	"pcforge/internal/storage"
	"pcforge/internal/validate"
)

type ComponentService struct {
	Repo  *repos.ComponentRepo
	Store storage.Storage
}

func NewComponentService(repo *repos.ComponentRepo, store storage.Storage) *ComponentService {
	return &ComponentService{Repo: repo, Store: store}
}

func (s *ComponentService) List(cat domain.Category) ([]domain.Component, error) {
	return s.Repo.ListByCategory(cat)
}

func (s *ComponentService) Get(id string) (domain.Component, error) {
	return s.Repo.Get(id)
}

func (s *ComponentService) Create(c *domain.Component) error {
	if err := checkComponent(c); err != nil {
		return err
	}
	return s.Repo.Create(c)
}

func (s *ComponentService) Update(c *domain.Component) error {
	if _, ok := validate.ID(c.ID); !ok {
		return invalid("id", "malformed")
	}
	if err := checkComponent(c); err != nil {
		return err
	}
	return s.Repo.Update(c)
}

func (s *ComponentService) Delete(cat domain.Category, id string) error {
	c, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(cat, id); err != nil {
		return err
	}
	removeImage(s.Store, c.ImageURL)
	return nil
}

// SetImage stores a new image for the component and replaces the old one.
// A component of another category is reported as not found.
func (s *ComponentService) SetImage(cat domain.Category, id string, data io.Reader, contentType string) (string, error) {
	c, err := s.Repo.Get(id)
	if err != nil {
		return "", err
	}
	if c.Category != cat {
		return "", repos.ErrNotFound
	}
	url, err := saveImage(s.Store, path.Join("components", id), data, contentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateImageURL(id, url); err != nil {
		removeImage(s.Store, url)
		return "", err
	}
	removeImage(s.Store, c.ImageURL)
	return url, nil
}

func checkComponent(c *domain.Component) error {
	if !c.Category.Valid() {
		return invalid("category", "unknown")
	}
	name, ok := validate.Name(c.Name)
	if !ok {
		return invalid("name", "required, at most 120 characters")
	}
	c.Name = name
	if !validate.Price(c.Price) {
		return invalid("price", "must be a non-negative amount")
	}
	if !validate.Stock(c.Stock) {
		return invalid("stock", "must be zero or more")
	}
	if d, ok := validate.Text(c.Description, 2000); ok {
		c.Description = d
	} else {
		return invalid("description", "too long")
	}
	if c.Specs == nil {
		c.Specs = domain.Specs{}
	}
	return nil
}

func saveImage(store storage.Storage, dir string, data io.Reader, contentType string) (string, error) {
	ext, ok := validate.ImageType(contentType)
	if !ok {
		return "", ErrUnsupportedImage
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("image key: %w", err)
	}
	return store.Save(path.Join(dir, hex.EncodeToString(b)+ext), data, contentType)
}

func removeImage(store storage.Storage, url string) {
	if url == "" {
		return
	}
	if key, ok := store.KeyFor(url); ok {
		_ = store.Delete(key)
	}
}
