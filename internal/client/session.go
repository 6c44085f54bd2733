package client

import (
	"pcforge/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type LoginResult struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
	Name    string `json:"name"`
}

// Login exchanges credentials for a bearer token and resolves the session.
func (c *Client) Login(email, password string) (LoginResult, error) {
	var res LoginResult
	err := c.do(fiber.MethodPost, "/api/v1/session", map[string]string{"email": email, "password": password}, &res)
	if err != nil {
		c.session.Invalidate()
		return res, err
	}
	c.setToken(res.Token)
	role := domain.RoleUser
	if res.IsAdmin {
		role = domain.RoleAdmin
	}
	c.session.Resolve(&domain.User{Name: res.Name, Role: role}, res.Token)
	return res, nil
}

// Resume resolves the session from an existing token.
func (c *Client) Resume(token string) error {
	c.setToken(token)
	var me struct {
		ID      string `json:"_id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := c.do(fiber.MethodGet, "/api/v1/session", nil, &me); err != nil {
		c.session.Invalidate()
		return err
	}
	role := domain.RoleUser
	if me.IsAdmin {
		role = domain.RoleAdmin
	}
	c.session.Resolve(&domain.User{ID: me.ID, Email: me.Email, Name: me.Name, Role: role}, token)
	return nil
}

func (c *Client) Logout() error {
	err := c.do(fiber.MethodDelete, "/api/v1/session", nil, nil)
	c.setToken("")
	c.session.Invalidate()
	return err
}
