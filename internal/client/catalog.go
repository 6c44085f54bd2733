package client

import (
	"encoding/json"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"pcforge/internal/admin"
	"pcforge/internal/domain"
)

func componentPath(slug string, id ...string) string {
	p := "/api/v1/components/" + slug
	for _, s := range id {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) List(cat domain.Category) ([]domain.Component, error) {
	s, err := schemaFor(cat)
	if err != nil {
		return nil, err
	}
	var out []domain.Component
	if err := c.do(fiber.MethodGet, componentPath(s.Slug), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts comp and returns the id the server assigned.
func (c *Client) Create(cat domain.Category, comp domain.Component) (string, error) {
	s, err := schemaFor(cat)
	if err != nil {
		return "", err
	}
	comp.Category = cat
	var body map[string]json.RawMessage
	if err := c.do(fiber.MethodPost, componentPath(s.Slug), comp, &body); err != nil {
		return "", err
	}
	return extractID(body, s.Entity)
}

func (c *Client) Update(cat domain.Category, comp domain.Component) error {
	s, err := schemaFor(cat)
	if err != nil {
		return err
	}
	comp.Category = cat
	return c.do(fiber.MethodPut, componentPath(s.Slug, comp.ID), comp, nil)
}

func (c *Client) Delete(cat domain.Category, id string) error {
	s, err := schemaFor(cat)
	if err != nil {
		return err
	}
	return c.do(fiber.MethodDelete, componentPath(s.Slug, id), nil, nil)
}

func (c *Client) UpdateImage(cat domain.Category, id string, img *admin.StagedImage) error {
	s, err := schemaFor(cat)
	if err != nil {
		return err
	}
	return c.upload(componentPath(s.Slug, id, "image"), img)
}

func presetPath(id ...string) string {
	p := "/api/v1/presets"
	for _, s := range id {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) ListPresets() ([]domain.Preset, error) {
	var out []domain.Preset
	if err := c.do(fiber.MethodGet, presetPath(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePreset(p domain.Preset) (string, error) {
	var body map[string]json.RawMessage
	if err := c.do(fiber.MethodPost, presetPath(), p, &body); err != nil {
		return "", err
	}
	return extractID(body, "preset")
}

func (c *Client) UpdatePreset(p domain.Preset) error {
	return c.do(fiber.MethodPut, presetPath(p.ID), p, nil)
}

func (c *Client) DeletePreset(id string) error {
	return c.do(fiber.MethodDelete, presetPath(id), nil, nil)
}

func (c *Client) UpdatePresetImage(id string, img *admin.StagedImage) error {
	return c.upload(presetPath(id, "image"), img)
}
