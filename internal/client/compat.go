package client

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"pcforge/internal/domain"
)

// Check asks the server for warnings, base price and option lists of sel.
// The last answer is reused while the selection is unchanged, since the
// editor asks for all three after every selection change.
func (c *Client) Check(sel domain.Selection) (CheckResult, error) {
	sel = sel.Clone()
	key, err := json.Marshal(sel)
	if err != nil {
		return CheckResult{}, err
	}
	c.mu.Lock()
	if c.checked == string(key) {
		res := c.last
		c.mu.Unlock()
		return res, nil
	}
	c.mu.Unlock()

	var res CheckResult
	if err := c.do(fiber.MethodPost, checkPath, map[string]any{"components": sel}, &res); err != nil {
		return CheckResult{}, err
	}
	c.mu.Lock()
	c.checked, c.last = string(key), res
	c.mu.Unlock()
	return res, nil
}

func (c *Client) ComputeWarnings(sel domain.Selection) ([]domain.Warning, error) {
	res, err := c.Check(sel)
	return res.Warnings, err
}

func (c *Client) FilterOptions(cat domain.Category, sel domain.Selection) ([]domain.Option, error) {
	res, err := c.Check(sel)
	return res.Options[cat], err
}

func (c *Client) ComputeBasePrice(sel domain.Selection) (float64, error) {
	res, err := c.Check(sel)
	return res.BasePrice, err
}
