package handlers

import (
	"bytes"

	"pcforge/internal/admin"
	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	"pcforge/internal/metrics"
	"pcforge/internal/services"
)

// localCatalog serves admin pages rendered by this process straight from the
// services, without a round trip through the JSON API.
type localCatalog struct {
	components *services.ComponentService
	presets    *services.PresetService
	metrics    *metrics.Collector
}

func entity(cat domain.Category) string {
	if s, ok := catalog.ForCategory(cat); ok {
		return s.Entity
	}
	return string(cat)
}

func (l *localCatalog) List(cat domain.Category) ([]domain.Component, error) {
	return l.components.List(cat)
}

func (l *localCatalog) Create(cat domain.Category, c domain.Component) (string, error) {
	c.Category = cat
	err := l.components.Create(&c)
	l.metrics.Mutation(entity(cat), "create", err)
	return c.ID, err
}

func (l *localCatalog) Update(cat domain.Category, c domain.Component) error {
	c.Category = cat
	err := l.components.Update(&c)
	l.metrics.Mutation(entity(cat), "update", err)
	return err
}

func (l *localCatalog) Delete(cat domain.Category, id string) error {
	err := l.components.Delete(cat, id)
	l.metrics.Mutation(entity(cat), "delete", err)
	return err
}

func (l *localCatalog) UpdateImage(cat domain.Category, id string, img *admin.StagedImage) error {
	_, err := l.components.SetImage(cat, id, bytes.NewReader(img.Data), imageType(img.ContentType, img.Data))
	l.metrics.Mutation(entity(cat), "image", err)
	return err
}

func (l *localCatalog) ListPresets() ([]domain.Preset, error) { return l.presets.List() }

func (l *localCatalog) CreatePreset(p domain.Preset) (string, error) {
	err := l.presets.Create(&p)
	l.metrics.Mutation("preset", "create", err)
	return p.ID, err
}

func (l *localCatalog) UpdatePreset(p domain.Preset) error {
	err := l.presets.Update(&p)
	l.metrics.Mutation("preset", "update", err)
	return err
}

func (l *localCatalog) DeletePreset(id string) error {
	err := l.presets.Delete(id)
	l.metrics.Mutation("preset", "delete", err)
	return err
}

func (l *localCatalog) UpdatePresetImage(id string, img *admin.StagedImage) error {
	_, err := l.presets.SetImage(id, bytes.NewReader(img.Data), imageType(img.ContentType, img.Data))
	l.metrics.Mutation("preset", "image", err)
	return err
}
