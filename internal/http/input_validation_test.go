package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pcforge/internal/domain"
)

func TestValidationBadInputs(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	fullSel := domain.Selection{
		"cpu": "cpu-7700x", "motherboard": "mb-b650", "ram": "ram-ddr5-32", "gpu": "gpu-4070s",
		"storage": "ssd-990-1tb", "powerSupply": "psu-rm750e", "case": "case-4000d", "cooling": "cool-ak620",
	}
	partial := domain.Selection{"cpu": "cpu-7700x"}

	cases := []struct {
		name   string
		req    *http.Request
		status int
		want   string
	}{
		{"unknown category", jsonRequest("GET", "/api/v1/components/hoverboards", admin, nil), 404, "unknown component category"},
		{"negative price", jsonRequest("POST", "/api/v1/components/gpus", admin, map[string]any{
			"name": "Bad GPU", "price": -1, "stock": 1,
		}), 400, `"field":"price"`},
		{"negative stock", jsonRequest("POST", "/api/v1/components/power-supplies", admin, map[string]any{
			"name": "Bad PSU", "price": 10, "stock": -3,
		}), 400, `"field":"stock"`},
		{"malformed body", jsonRequest("POST", "/api/v1/components/gpus", admin, "not an object"), 400, "invalid body"},
		{"bad id", jsonRequest("PUT", "/api/v1/components/gpus/bad%20id!", admin, map[string]any{"name": "x"}), 400, "invalid id"},
		{"missing id", jsonRequest("DELETE", "/api/v1/components/gpus/gpu-none", admin, nil), 404, "not found"},
		{"bad preset enum", jsonRequest("POST", "/api/v1/presets", admin, map[string]any{
			"name": "Gaming rig", "category": "gaming", "components": fullSel,
		}), 400, `"field":"category"`},
		{"incomplete preset", jsonRequest("POST", "/api/v1/presets", admin, map[string]any{
			"name": "Half a rig", "category": "office", "components": partial,
		}), 422, "missing component selections"},
	}
	for _, tc := range cases {
		resp, body := a.do(t, tc.req)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.status, resp.StatusCode, body)
		}
		if !strings.Contains(body, tc.want) {
			t.Fatalf("%s: body missing %q; body=%s", tc.name, tc.want, body)
		}
	}
}

func imageUpload(path, token, name string, data []byte) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	w, _ := mw.CreateFormFile("image", name)
	_, _ = w.Write(data)
	_ = mw.Close()
	req := httptest.NewRequest("PUT", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestNonImageUploadRejected(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	resp, body := a.do(t, imageUpload("/api/v1/components/gpus/gpu-4070s/image", admin, "notes.txt", []byte("plain text, not an image")))
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d body=%s", resp.StatusCode, body)
	}
}

func TestImageUploadScopedToCategory(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	resp, body := a.do(t, imageUpload("/api/v1/components/gpus/cpu-7700x/image", admin, "cpu.png", pngBytes))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cpu id under gpus: expected 404, got %d body=%s", resp.StatusCode, body)
	}
	var img string
	if err := a.db.Get(&img, `SELECT image_url FROM components WHERE id='cpu-7700x'`); err != nil {
		t.Fatalf("select: %v", err)
	}
	if img != "" {
		t.Fatalf("cpu image changed through the gpu route: %q", img)
	}

	resp, body = a.do(t, imageUpload("/api/v1/components/cpus/cpu-7700x/image", admin, "cpu.png", pngBytes))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("matching category: expected 200, got %d body=%s", resp.StatusCode, body)
	}
}

func TestTemplateAutoEscape(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	resp, body := a.do(t, jsonRequest("POST", "/api/v1/components/gpus", admin, map[string]any{
		"name": "<script>alert(1)</script>", "brand": "Evil", "price": 1, "stock": 1,
		"specs": map[string]any{"chipset": "<b>x</b>", "vram": 8, "tdp": 100},
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", resp.StatusCode, body)
	}

	req := httptest.NewRequest("GET", "/admin/components/gpus", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: admin})
	_, body = a.do(t, req)
	if strings.Contains(body, "<script>alert(1)</script>") || strings.Contains(body, "<b>x</b>") {
		t.Fatalf("markup rendered unescaped; body=%s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("escaped name missing; body=%s", body)
	}
}
