package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func gpuForm(name string) map[string]string {
	return map[string]string{
		"name": name, "brand": "XFX", "model": "RX-76P", "chipset": "RX 7600",
		"vram": "8", "memoryType": "GDDR6", "tdp": "165", "length": "240",
		"price": "269.99", "stock": "3",
	}
}

func TestAdminCreateComponentWithImage(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	resp, body := a.do(t, formRequest(t, "/admin/components/gpus", tok, admin, gpuForm("Radeon RX 7600"), &upload{"card.png", pngBytes}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: expected 200, got %d body=%s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "GPU created successfully") || !strings.Contains(body, "Radeon RX 7600") {
		t.Fatalf("created GPU missing; body=%s", body)
	}

	var img string
	if err := a.db.Get(&img, `SELECT image_url FROM components WHERE name='Radeon RX 7600'`); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !strings.HasPrefix(img, "/media/components/") || !strings.HasSuffix(img, ".png") {
		t.Fatalf("unexpected image url %q", img)
	}
}

func TestAdminCreateFailureShowsGenericError(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	resp, body := a.do(t, formRequest(t, "/admin/components/gpus", tok, admin, gpuForm(""), nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Failed to create GPU") {
		t.Fatalf("generic error missing; body=%s", body)
	}
	if strings.Contains(body, "required, at most 120") {
		t.Fatalf("validation internals leaked; body=%s", body)
	}
	// The submitted values stay in the form.
	if !strings.Contains(body, `value="RX-76P"`) {
		t.Fatalf("form values not kept; body=%s", body)
	}
}

func TestAdminCreateRequiresCSRF(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	req := formRequest(t, "/admin/components/gpus", "forged-token", admin, gpuForm("Sneaky GPU"), nil)
	resp, _ := a.do(t, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without a valid csrf token, got %d", resp.StatusCode)
	}
}

func TestAdminEditAndDeleteComponent(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	req := httptest.NewRequest("GET", "/admin/components/power-supplies/psu-rm750e/edit", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: admin})
	resp, body := a.do(t, req)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `value="RM750e"`) {
		t.Fatalf("edit form: got %d body=%s", resp.StatusCode, body)
	}

	form := map[string]string{
		"name": "RM750e v2", "brand": "Corsair", "model": "CP-9020262-NA", "wattage": "750",
		"efficiency": "80+ Gold", "modular": "Full", "formFactor": "ATX", "price": "94.99", "stock": "9",
	}
	resp, body = a.do(t, formRequest(t, "/admin/components/power-supplies/psu-rm750e", tok, admin, form, nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Power supply updated successfully") {
		t.Fatalf("update: got %d body=%s", resp.StatusCode, body)
	}

	req = httptest.NewRequest("GET", "/admin/components/gpus/gpu-4070s/delete", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: admin})
	resp, body = a.do(t, req)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "GeForce RTX 4070 Super") {
		t.Fatalf("confirm page: got %d body=%s", resp.StatusCode, body)
	}

	resp, body = a.do(t, formRequest(t, "/admin/components/gpus/gpu-4070s/delete", tok, admin, nil, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d body=%s", resp.StatusCode, body)
	}
	if strings.Contains(body, "gpu-4070s/edit") {
		t.Fatalf("deleted GPU still listed; body=%s", body)
	}
}

func presetForm(sel map[string]string, action string) map[string]string {
	f := map[string]string{
		"id": "preset-creator", "name": "Creator Workstation", "category": "workstation",
		"basePrice": "1598.93", "description": "Balanced build", "isActive": "on", "action": action,
	}
	for k, v := range sel {
		f["sel_"+k] = v
	}
	return f
}

func creatorSelection() map[string]string {
	return map[string]string{
		"cpu": "cpu-7700x", "motherboard": "mb-b650", "ram": "ram-ddr5-32", "gpu": "gpu-4070s",
		"storage": "ssd-990-1tb", "powerSupply": "psu-rm750e", "case": "case-4000d", "cooling": "cool-ak620",
	}
}

func TestAdminPresetEditor(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	req := httptest.NewRequest("GET", "/admin/presets/preset-creator/edit", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: admin})
	resp, body := a.do(t, req)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "$1598.93") {
		t.Fatalf("editor: got %d body=%s", resp.StatusCode, body)
	}
	if strings.Contains(body, "disabled") {
		t.Fatalf("clean preset should be submittable; body=%s", body)
	}

	sel := creatorSelection()
	sel["cpu"] = "cpu-14600k"
	resp, body = a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, presetForm(sel, "check"), nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "CPU socket LGA1700 does not fit motherboard socket AM5") || !strings.Contains(body, "disabled") {
		t.Fatalf("warning or disabled submit missing; body=%s", body)
	}

	resp, body = a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, presetForm(sel, "save"), nil))
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(body, "Resolve the compatibility warnings first") {
		t.Fatalf("gated save: got %d body=%s", resp.StatusCode, body)
	}

	partial := creatorSelection()
	delete(partial, "cooling")
	resp, body = a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, presetForm(partial, "save"), nil))
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(body, "Select a component for every category") {
		t.Fatalf("incomplete save: got %d body=%s", resp.StatusCode, body)
	}

	resp, body = a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, presetForm(creatorSelection(), "save"), nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Preset updated successfully") {
		t.Fatalf("save: got %d body=%s", resp.StatusCode, body)
	}
}

func TestAdminPresetKeepsTypedBasePrice(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	form := presetForm(creatorSelection(), "save")
	form["basePrice"] = "1234.50"
	resp, body := a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, form, nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Preset updated successfully") {
		t.Fatalf("save: got %d body=%s", resp.StatusCode, body)
	}
	var stored float64
	if err := a.db.Get(&stored, `SELECT base_price FROM presets WHERE id='preset-creator'`); err != nil {
		t.Fatal(err)
	}
	if stored != 1234.5 {
		t.Fatalf("typed base price lost: stored=%v", stored)
	}

	// A changed selection reprices even when the form carries a price.
	sel := creatorSelection()
	sel["ram"] = ""
	form = presetForm(sel, "check")
	form["basePrice"] = "1234.50"
	form["prev"] = "1"
	for k, v := range creatorSelection() {
		form["prev_"+k] = v
	}
	resp, body = a.do(t, formRequest(t, "/admin/presets/editor", tok, admin, form, nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "$1488.94") {
		t.Fatalf("repriced check: got %d body=%s", resp.StatusCode, body)
	}
}

func TestAdminDeletePreset(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")
	tok := a.csrfToken(t)

	resp, body := a.do(t, formRequest(t, "/admin/presets/preset-creator/delete", tok, admin, nil, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: got %d body=%s", resp.StatusCode, body)
	}
	var n int
	if err := a.db.Get(&n, `SELECT COUNT(*) FROM presets`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected no presets, got %d", n)
	}
}

func TestDashboardCounts(t *testing.T) {
	a := newTestApp(t)
	admin := a.bind(t, "sid-admin", "u-admin")

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: admin})
	resp, body := a.do(t, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", resp.StatusCode)
	}
	for _, want := range []string{"GPUs", "Power supplies", "Presets"} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q; body=%s", want, body)
		}
	}
}
