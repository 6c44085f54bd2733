package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"pcforge/internal/admin"
	"pcforge/internal/catalog"
	"pcforge/internal/client"
	"pcforge/internal/config"
)

// connect logs in with the configured admin credentials.
func connect() (*client.Client, error) {
	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	c := client.New(cfg.APIURL)
	res, err := c.Login(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !res.IsAdmin {
		return nil, fmt.Errorf("%s is not an admin", cfg.AdminEmail)
	}
	return c, nil
}

func schemaArg(args []string) (catalog.Schema, []string, error) {
	if len(args) < 1 {
		return catalog.Schema{}, nil, errors.New("category is required (e.g. gpus, power-supplies)")
	}
	s, ok := catalog.BySlug(args[0])
	if !ok {
		var slugs []string
		for _, s := range catalog.All() {
			slugs = append(slugs, s.Slug)
		}
		return catalog.Schema{}, nil, fmt.Errorf("unknown category %q (one of %s)", args[0], strings.Join(slugs, ", "))
	}
	return s, args[1:], nil
}

// parseAssignments turns key=value arguments into change events for schema.
func parseAssignments(s catalog.Schema, args []string) ([]admin.ChangeEvent, error) {
	kinds := map[string]catalog.Kind{}
	for _, f := range s.Fields {
		kinds[f.Key] = f.Kind
	}
	var evs []admin.ChangeEvent
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		kind, known := kinds[k]
		if !known {
			return nil, fmt.Errorf("%s has no field %q", s.Title, k)
		}
		checked := v == "true" || v == "on" || v == "1"
		evs = append(evs, admin.ChangeEvent{Field: k, Value: v, Kind: kind, Checked: checked})
	}
	return evs, nil
}

func readImage(path string) (*admin.StagedImage, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	name := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		name = path[i+1:]
	}
	return &admin.StagedImage{Name: name, ContentType: http.DetectContentType(data), Data: data}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
