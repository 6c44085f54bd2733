package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcforge/internal/domain"
)

func fullSelection() domain.Selection {
	sel := domain.Selection{}
	for _, c := range domain.PresetCategories {
		sel[c] = string(c) + "-1"
	}
	return sel
}

func TestPresetEditorRecomputesOnSelect(t *testing.T) {
	collab := &fakeCollab{}
	e, err := NewPresetEditor(collab, nil, func(domain.Preset, *StagedImage) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, collab.calls)
	assert.Len(t, e.Missing(), len(domain.PresetCategories))
	assert.Len(t, e.Options, len(domain.PresetCategories))
	assert.True(t, e.SubmitDisabled())

	require.NoError(t, e.Select(domain.CategoryCPU, "cpu-1"))
	assert.Equal(t, 2, collab.calls)
	assert.Equal(t, 100.0, e.BasePrice)
	assert.Equal(t, 100.0, e.Record["basePrice"])

	// unknown categories are ignored
	require.NoError(t, e.Select("keyboard", "k1"))
	assert.Equal(t, 2, collab.calls)
}

func TestPresetEditorKeepsStoredBasePrice(t *testing.T) {
	var sent domain.Preset
	e, err := NewPresetEditor(&fakeCollab{}, &domain.Preset{ID: "p1", Name: "Creator", Category: domain.PresetWorkstation,
		BasePrice: 1500, Components: fullSelection()},
		func(p domain.Preset, _ *StagedImage) error { sent = p; return nil })
	require.NoError(t, err)
	assert.Equal(t, 1500.0, e.Record["basePrice"], "opening the editor does not reprice")
	assert.Equal(t, 1500.0, e.BasePrice)

	e.Change(ChangeEvent{Field: "basePrice", Value: "1234.5", Kind: "number"})
	assert.Equal(t, 1234.5, e.BasePrice)
	require.NoError(t, e.Submit())
	assert.Equal(t, 1234.5, sent.BasePrice)

	require.NoError(t, e.Select(domain.CategoryGPU, "gpu-2"))
	assert.Equal(t, 800.0, e.Record["basePrice"], "a selection change reprices")
	assert.Equal(t, 800.0, e.BasePrice)
}

func TestPresetSubmitDisabledTruthTable(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cpu      string
		inFlight bool
		want     bool
	}{
		{"complete and clean", "cpu-1", false, false},
		{"missing category", "", false, true},
		{"warning outstanding", "cpu-bad", false, true},
		{"in flight", "cpu-1", true, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sel := fullSelection()
			sel[domain.CategoryCPU] = tc.cpu
			e, err := NewPresetEditor(&fakeCollab{}, &domain.Preset{Components: sel}, nil)
			require.NoError(t, err)
			e.InFlight = tc.inFlight
			assert.Equal(t, tc.want, e.SubmitDisabled())
		})
	}
}

func TestPresetSubmitReturnsEarlyWhenIncomplete(t *testing.T) {
	sel := fullSelection()
	sel[domain.CategoryCPU] = ""
	called := 0
	e, err := NewPresetEditor(&fakeCollab{}, &domain.Preset{ID: "p1", Components: sel},
		func(domain.Preset, *StagedImage) error { called++; return nil })
	require.NoError(t, err)

	assert.ErrorIs(t, e.Submit(), ErrPresetIncomplete)
	assert.Zero(t, called)

	require.NoError(t, e.Select(domain.CategoryCPU, "cpu-bad"))
	assert.ErrorIs(t, e.Submit(), ErrPresetWarnings)
	assert.Zero(t, called)

	require.NoError(t, e.Select(domain.CategoryCPU, "cpu-1"))
	require.NoError(t, e.Submit())
	assert.Equal(t, 1, called)
	assert.False(t, e.InFlight)
}

func TestPresetPageCreateAndEdit(t *testing.T) {
	api := &fakeCatalog{}
	clk := &manualClock{}
	p := NewPresetPage(api, &fakeCollab{}, adminSession(), WithScheduler(clk.after))
	require.NoError(t, p.Load())
	assert.Equal(t, TableEmpty, p.Table().State)

	require.NoError(t, p.BeginCreate())
	ed := p.Editor
	ed.Change(ChangeEvent{Field: "name", Value: "Office Basic"})
	ed.Change(ChangeEvent{Field: "category", Value: domain.PresetOffice})
	for c, id := range fullSelection() {
		require.NoError(t, ed.Select(c, id))
	}
	ed.StageImage(&StagedImage{ContentType: "image/png", Data: []byte{1}})
	require.False(t, ed.SubmitDisabled())
	require.NoError(t, ed.Submit())

	assert.Equal(t, []string{"list", "create", "image", "list"}, api.ops())
	sent := api.calls[1].Val.(domain.Preset)
	assert.Equal(t, "Office Basic", sent.Name)
	assert.Equal(t, domain.PresetOffice, sent.Category)
	assert.Equal(t, 800.0, sent.BasePrice)
	assert.True(t, sent.Active)
	assert.Equal(t, "preset-1", api.calls[2].ID)
	assert.Nil(t, p.Editor)
	assert.Equal(t, "Preset created successfully", p.Success())
	require.Len(t, p.Items, 1)

	require.NoError(t, p.BeginEdit(p.Items[0]))
	p.Editor.Change(ChangeEvent{Field: "isActive", Checked: false})
	require.NoError(t, p.Editor.Submit())
	upd := api.calls[len(api.calls)-2]
	assert.Equal(t, "update", upd.Op)
	assert.False(t, upd.Val.(domain.Preset).Active)

	clk.fireAll()
	assert.Empty(t, p.Success())
}

func TestPresetPageDelete(t *testing.T) {
	api := &fakeCatalog{presets: []domain.Preset{{ID: "p1", Name: "Creator", Category: domain.PresetWorkstation}}}
	p := NewPresetPage(api, &fakeCollab{}, adminSession(), WithScheduler((&manualClock{}).after))
	require.NoError(t, p.Load())

	p.BeginDelete(p.Items[0])
	v := p.DeleteView()
	require.NotNil(t, v)
	assert.Equal(t, "Creator", v.Summary[0])

	require.NoError(t, p.ConfirmDelete())
	assert.Empty(t, p.Items)
	assert.Equal(t, "Preset deleted successfully", p.Success())
}
