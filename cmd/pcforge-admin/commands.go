package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"pcforge/internal/admin"
	"pcforge/internal/domain"
)

type pageResult struct {
	Message string             `json:"message,omitempty"`
	Items   []domain.Component `json:"items"`
}

func openPage(args []string) (*admin.Page, []string, error) {
	s, rest, err := schemaArg(args)
	if err != nil {
		return nil, nil, err
	}
	c, err := connect()
	if err != nil {
		return nil, nil, err
	}
	p := admin.NewPage(s, c, c.Session())
	if err := p.Load(); err != nil {
		return nil, nil, err
	}
	if p.Error != "" {
		return nil, nil, errors.New(p.Error)
	}
	return p, rest, nil
}

func findItem(p *admin.Page, id string) (domain.Component, error) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.Component{}, fmt.Errorf("%s %q not found", p.Schema.Title, id)
}

// pageErr prefers the page's user facing message over the raw error.
func pageErr(p *admin.Page, err error) error {
	if p.Error != "" {
		return fmt.Errorf("%s: %w", p.Error, err)
	}
	return err
}

func runList(args []string) error {
	p, _, err := openPage(args)
	if err != nil {
		return err
	}
	return printJSON(pageResult{Items: p.Items})
}

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	image := fs.String("image", "", "Path to an image to upload after creating")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pcforge-admin create [-image file] <category> key=value...\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, rest, err := openPage(fs.Args())
	if err != nil {
		return err
	}
	evs, err := parseAssignments(p.Schema, rest)
	if err != nil {
		return err
	}
	img, err := readImage(*image)
	if err != nil {
		return err
	}
	rec := admin.Blank(p.Schema)
	for _, ev := range evs {
		rec = admin.ApplyChange(p.Schema, rec, ev)
	}
	if err := p.Create(rec, img); err != nil {
		return pageErr(p, err)
	}
	return printJSON(pageResult{Message: p.Success(), Items: p.Items})
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	image := fs.String("image", "", "Path to a replacement image")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pcforge-admin update [-image file] <category> <id> key=value...\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, rest, err := openPage(fs.Args())
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return errors.New("component id is required")
	}
	item, err := findItem(p, rest[0])
	if err != nil {
		return err
	}
	evs, err := parseAssignments(p.Schema, rest[1:])
	if err != nil {
		return err
	}
	img, err := readImage(*image)
	if err != nil {
		return err
	}
	p.BeginEdit(item)
	for _, ev := range evs {
		p.Change(ev)
	}
	p.StageImage(img)
	if err := p.SubmitEdit(); err != nil {
		return pageErr(p, err)
	}
	return printJSON(pageResult{Message: p.Success(), Items: p.Items})
}

func runDelete(args []string) error {
	p, rest, err := openPage(args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return errors.New("component id is required")
	}
	item, err := findItem(p, rest[0])
	if err != nil {
		return err
	}
	p.BeginDelete(item)
	if v := p.DeleteView(); v != nil {
		fmt.Fprintln(os.Stderr, v.Title)
	}
	if err := p.ConfirmDelete(); err != nil {
		return pageErr(p, err)
	}
	return printJSON(pageResult{Message: p.Success(), Items: p.Items})
}

func runPresets(_ []string) error {
	c, err := connect()
	if err != nil {
		return err
	}
	p := admin.NewPresetPage(c, c, c.Session())
	if err := p.Load(); err != nil {
		return err
	}
	if p.Error != "" {
		return errors.New(p.Error)
	}
	return printJSON(p.Items)
}

type checkOutput struct {
	Selection       domain.Selection    `json:"selection"`
	Missing         []domain.Category   `json:"missing"`
	Warnings        []domain.Warning    `json:"warnings"`
	BasePrice       float64             `json:"basePrice"`
	ComponentsTotal float64             `json:"componentsTotal"`
	Savable         bool                `json:"savable"`
	Options         map[string][]string `json:"options,omitempty"`
}

func runPresetCheck(args []string) error {
	fs := flag.NewFlagSet("preset-check", flag.ContinueOnError)
	from := fs.String("preset", "", "Start from an existing preset's selection")
	showOptions := fs.Bool("options", false, "Include the compatible options per category")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pcforge-admin preset-check [-preset id] [-options] category=componentId...\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := connect()
	if err != nil {
		return err
	}

	var start *domain.Preset
	if *from != "" {
		pp := admin.NewPresetPage(c, c, c.Session())
		if err := pp.Load(); err != nil {
			return err
		}
		for i := range pp.Items {
			if pp.Items[i].ID == *from {
				start = &pp.Items[i]
			}
		}
		if start == nil {
			return fmt.Errorf("preset %q not found", *from)
		}
	}
	ed, err := admin.NewPresetEditor(c, start, nil)
	if err != nil {
		return err
	}
	for _, a := range fs.Args() {
		k, v, ok := strings.Cut(a, "=")
		cat := domain.Category(k)
		if !ok || !cat.Valid() {
			return fmt.Errorf("expected category=componentId, got %q", a)
		}
		if err := ed.Select(cat, v); err != nil {
			return err
		}
	}

	total, err := c.ComputeBasePrice(ed.Selection)
	if err != nil {
		return err
	}
	out := checkOutput{
		Selection:       ed.Selection,
		Missing:         ed.Missing(),
		Warnings:        ed.Warnings,
		BasePrice:       ed.BasePrice,
		ComponentsTotal: total,
		Savable:         !ed.SubmitDisabled(),
	}
	if *showOptions {
		out.Options = map[string][]string{}
		for cat, opts := range ed.Options {
			for _, o := range opts {
				out.Options[string(cat)] = append(out.Options[string(cat)], o.ID)
			}
		}
	}
	return printJSON(out)
}
