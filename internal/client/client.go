// Package client talks to the pcforge catalog API over HTTP. A Client
// implements admin.CatalogAPI, admin.PresetAPI and admin.Collaborator so the
// admin screens can run against a remote server.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"pcforge/internal/admin"
	"pcforge/internal/catalog"
	"pcforge/internal/domain"
)

// ErrNoID means a create response carried neither "_id" nor "{entity}._id".
var ErrNoID = errors.New("create response has no id")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status   int
	Message  string
	Warnings []domain.Warning
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unauthorized reports whether err is a 401 from the server.
func Unauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == fiber.StatusUnauthorized
}

type Client struct {
	baseURL string
	http    *fiber.Client

	mu      sync.Mutex
	token   string
	session *admin.Session
	checked string
	last    CheckResult
}

// CheckResult is the answer of POST /api/v1/presets/check.
type CheckResult struct {
	Warnings  []domain.Warning                    `json:"warnings"`
	BasePrice float64                             `json:"basePrice"`
	Options   map[domain.Category][]domain.Option `json:"options"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &fiber.Client{},
		session: admin.NewSession(),
	}
}

// Session is resolved by Login and Resume, and invalidated by Logout or
// by any 401 answer.
func (c *Client) Session() *admin.Session { return c.session }

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
}

var (
	_ admin.CatalogAPI   = (*Client)(nil)
	_ admin.PresetAPI    = (*Client)(nil)
	_ admin.Collaborator = (*Client)(nil)
)

const checkPath = "/api/v1/presets/check"

func (c *Client) agent(method, path string) *fiber.Agent {
	if method != fiber.MethodGet && path != checkPath {
		// catalog changed, cached check answers may be stale
		c.mu.Lock()
		c.checked = ""
		c.mu.Unlock()
	}
	url := c.baseURL + path
	var a *fiber.Agent
	switch method {
	case fiber.MethodPost:
		a = c.http.Post(url)
	case fiber.MethodPut:
		a = c.http.Put(url)
	case fiber.MethodDelete:
		a = c.http.Delete(url)
	default:
		a = c.http.Get(url)
	}
	if tok := c.Token(); tok != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	return a
}

// send runs the request and decodes a 2xx body into out (when non-nil).
func (c *Client) send(a *fiber.Agent, out any) error {
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		ae := &APIError{Status: code, Message: utils.StatusMessage(code)}
		var payload struct {
			Error    string           `json:"error"`
			Warnings []domain.Warning `json:"warnings"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			ae.Message = payload.Error
			ae.Warnings = payload.Warnings
		}
		if code == fiber.StatusUnauthorized {
			c.session.Invalidate()
		}
		return ae
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(method, path string, in, out any) error {
	a := c.agent(method, path)
	if in != nil {
		a.JSON(in)
	}
	return c.send(a, out)
}

// upload sends img as the multipart field "image".
func (c *Client) upload(path string, img *admin.StagedImage) error {
	if img == nil {
		return nil
	}
	name := img.Name
	if name == "" {
		name = "image"
	}
	a := c.agent(fiber.MethodPut, path)
	a.FileData(&fiber.FormFile{Fieldname: "image", Name: name, Content: img.Data})
	a.MultipartForm(nil)
	return c.send(a, nil)
}

// extractID reads the new id from a create response: "_id" at the top
// level, or "_id" inside the object keyed by entity.
func extractID(body map[string]json.RawMessage, entity string) (string, error) {
	var id string
	if raw, ok := body["_id"]; ok && json.Unmarshal(raw, &id) == nil && id != "" {
		return id, nil
	}
	if raw, ok := body[entity]; ok {
		var nested struct {
			ID string `json:"_id"`
		}
		if json.Unmarshal(raw, &nested) == nil && nested.ID != "" {
			return nested.ID, nil
		}
	}
	return "", ErrNoID
}

func schemaFor(cat domain.Category) (catalog.Schema, error) {
	s, ok := catalog.ForCategory(cat)
	if !ok {
		return catalog.Schema{}, fmt.Errorf("unknown category %q", cat)
	}
	return s, nil
}
