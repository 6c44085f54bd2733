package services

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"pcforge/internal/catalog"
	"pcforge/internal/domain"
	applog "pcforge/internal/log"
	"pcforge/internal/repos"
)

type compiledRule struct {
	rule
	check   *vm.Program
	message *vm.Program
}

// CompatService decides which component combinations work together. It backs
// the preset editor: warnings, filtered option lists and the base price.
type CompatService struct {
	Repo  *repos.ComponentRepo
	rules []compiledRule
}

// CheckResult bundles everything the preset editor recomputes after a selection change.
type CheckResult struct {
	Warnings  []domain.Warning                   `json:"warnings"`
	BasePrice float64                            `json:"basePrice"`
	Options   map[domain.Category][]domain.Option `json:"options"`
}

func NewCompatService(repo *repos.ComponentRepo) (*CompatService, error) {
	return newCompatService(repo, defaultRules)
}

func newCompatService(repo *repos.ComponentRepo, rules []rule) (*CompatService, error) {
	env := compileEnv()
	s := &CompatService{Repo: repo}
	for _, r := range rules {
		check, err := expr.Compile(r.Check, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("rule %s: check: %w", r.Name, err)
		}
		msg, err := expr.Compile(r.Message, expr.Env(env))
		if err != nil {
			return nil, fmt.Errorf("rule %s: message: %w", r.Name, err)
		}
		s.rules = append(s.rules, compiledRule{rule: r, check: check, message: msg})
	}
	return s, nil
}

func (s *CompatService) ComputeWarnings(sel domain.Selection) ([]domain.Warning, error) {
	loaded, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.evaluate(loaded), nil
}

// FilterOptions lists the components of cat that raise no warning against the
// rest of the selection.
func (s *CompatService) FilterOptions(cat domain.Category, sel domain.Selection) ([]domain.Option, error) {
	loaded, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.options(cat, loaded)
}

// ComputeBasePrice sums the prices of the selected components.
func (s *CompatService) ComputeBasePrice(sel domain.Selection) (float64, error) {
	loaded, err := s.load(sel)
	if err != nil {
		return 0, err
	}
	return basePrice(loaded), nil
}

// Check runs warnings, base price and the option lists of every category in one pass.
func (s *CompatService) Check(sel domain.Selection) (CheckResult, error) {
	loaded, err := s.load(sel)
	if err != nil {
		return CheckResult{}, err
	}
	res := CheckResult{
		Warnings:  s.evaluate(loaded),
		BasePrice: basePrice(loaded),
		Options:   make(map[domain.Category][]domain.Option, len(domain.PresetCategories)),
	}
	if res.Warnings == nil {
		res.Warnings = []domain.Warning{}
	}
	for _, c := range domain.PresetCategories {
		opts, err := s.options(c, loaded)
		if err != nil {
			return CheckResult{}, err
		}
		res.Options[c] = opts
	}
	return res, nil
}

// load resolves the selected ids. Categories whose id is empty or unknown are left out.
func (s *CompatService) load(sel domain.Selection) (map[domain.Category]domain.Component, error) {
	var ids []string
	for _, c := range domain.PresetCategories {
		if id := sel[c]; id != "" {
			ids = append(ids, id)
		}
	}
	comps, err := s.Repo.GetMany(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Component, len(comps))
	for _, c := range comps {
		byID[c.ID] = c
	}
	out := make(map[domain.Category]domain.Component, len(comps))
	for _, c := range domain.PresetCategories {
		if comp, ok := byID[sel[c]]; ok {
			out[c] = comp
		}
	}
	return out, nil
}

func (s *CompatService) evaluate(loaded map[domain.Category]domain.Component) []domain.Warning {
	var out []domain.Warning
	env := runEnv(loaded)
	for _, r := range s.rules {
		if !applies(r.Needs, loaded) {
			continue
		}
		ok, err := expr.Run(r.check, env)
		if err != nil {
			applog.Error(nil, "compat.rule.fail", err, map[string]any{"rule": r.Name})
			continue
		}
		if pass, _ := ok.(bool); pass {
			continue
		}
		out = append(out, domain.Warning{Rule: r.Name, Message: s.message(r, env)})
	}
	return out
}

func (s *CompatService) message(r compiledRule, env map[string]any) string {
	v, err := expr.Run(r.message, env)
	if err != nil {
		applog.Error(nil, "compat.message.fail", err, map[string]any{"rule": r.Name})
		return r.Name + " check failed"
	}
	return fmt.Sprint(v)
}

func (s *CompatService) options(cat domain.Category, loaded map[domain.Category]domain.Component) ([]domain.Option, error) {
	candidates, err := s.Repo.ListByCategory(cat)
	if err != nil {
		return nil, err
	}
	out := []domain.Option{}
	trial := make(map[domain.Category]domain.Component, len(loaded)+1)
	for k, v := range loaded {
		if k != cat {
			trial[k] = v
		}
	}
	for _, cand := range candidates {
		trial[cat] = cand
		if s.compatible(cat, trial) {
			out = append(out, domain.Option{
				ID:    cand.ID,
				Label: fmt.Sprintf("%s %s", cand.Brand, cand.Name),
				Price: cand.Price,
			})
		}
	}
	return out, nil
}

// compatible checks only the rules that involve cat.
func (s *CompatService) compatible(cat domain.Category, trial map[domain.Category]domain.Component) bool {
	env := runEnv(trial)
	for _, r := range s.rules {
		if !involves(r.Needs, cat) || !applies(r.Needs, trial) {
			continue
		}
		ok, err := expr.Run(r.check, env)
		if err != nil {
			applog.Error(nil, "compat.rule.fail", err, map[string]any{"rule": r.Name})
			continue
		}
		if pass, _ := ok.(bool); !pass {
			return false
		}
	}
	return true
}

func applies(needs []domain.Category, loaded map[domain.Category]domain.Component) bool {
	for _, c := range needs {
		comp, ok := loaded[c]
		if !ok || comp.Category != c {
			return false
		}
	}
	return true
}

func involves(needs []domain.Category, cat domain.Category) bool {
	for _, c := range needs {
		if c == cat {
			return true
		}
	}
	return false
}

func basePrice(loaded map[domain.Category]domain.Component) float64 {
	total := 0.0
	for _, c := range loaded {
		total += c.Price
	}
	return math.Round(total*100) / 100
}

func helpers() map[string]any {
	return map[string]any{
		"formFactorRank": formFactorRank,
		"listHas":        listHas,
	}
}

func compileEnv() map[string]any {
	env := helpers()
	for _, c := range domain.PresetCategories {
		env[envNames[c]] = componentEnv(domain.Component{Category: c})
	}
	return env
}

func runEnv(loaded map[domain.Category]domain.Component) map[string]any {
	env := compileEnv()
	for c, comp := range loaded {
		env[envNames[c]] = componentEnv(comp)
	}
	return env
}

// componentEnv flattens a component into rule variables. Every schema spec is
// present so rules never see nil.
func componentEnv(c domain.Component) map[string]any {
	m := map[string]any{
		"name":  c.Name,
		"brand": c.Brand,
		"price": c.Price,
		"stock": c.Stock,
	}
	schema, _ := catalog.ForCategory(c.Category)
	for _, f := range schema.SpecFields() {
		switch f.Kind {
		case catalog.Number, catalog.Integer:
			m[f.Key] = c.Specs.Number(f.Key)
		case catalog.Checkbox:
			b, _ := c.Specs[f.Key].(bool)
			m[f.Key] = b
		default:
			m[f.Key] = c.Specs.Text(f.Key)
		}
	}
	return m
}
