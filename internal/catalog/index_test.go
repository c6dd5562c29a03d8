package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flowbricks/internal/model"
	"github.com/vk/flowbricks/internal/testutil"
)

func sampleUnits() []model.UnitSummary {
	return []model.UnitSummary{
		{ID: "churn_model", Version: "2.1.0", Category: "ml", Domain: "marketing", Tags: []string{"Classification", "churn"}},
		{ID: "clean_orders", Version: "1.0", Category: "prep", Domain: "sales", Tags: []string{"cleaning"},
			Inputs:  testutil.Ports(testutil.In("orders", "data", testutil.Col("id"))),
			Outputs: testutil.Ports(testutil.Out("clean", "data", testutil.Col("id")))},
		{ID: "aggregate_sales", Version: "v0.3.1", Category: "prep", Domain: "sales", Tags: []string{"aggregation", "cleaning"}},
	}
}

func TestNewIndex(t *testing.T) {
	idx, err := NewIndex(sampleUnits())
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())

	var ids []string
	for _, u := range idx.All() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"aggregate_sales", "churn_model", "clean_orders"}, ids)

	prep := idx.ByCategory("prep")
	require.Len(t, prep, 2)
	assert.Equal(t, "aggregate_sales", prep[0].ID)
	assert.Equal(t, "clean_orders", prep[1].ID)
	assert.Empty(t, idx.ByCategory("PREP"), "category lookups are exact")

	assert.Len(t, idx.ByTag("CLEANING"), 2)
	assert.Len(t, idx.ByTag("classification"), 1)

	assert.Equal(t, []string{"ml", "prep"}, idx.Categories())
	assert.Equal(t, []string{"marketing", "sales"}, idx.Domains())
	assert.Equal(t, []string{"aggregation", "churn", "classification", "cleaning"}, idx.Tags())

	u, ok := idx.Get("clean_orders")
	require.True(t, ok)
	assert.Equal(t, "orders", u.Inputs[0].Name)
	_, ok = idx.Get("missing")
	assert.False(t, ok)
}

func TestNewIndex_DoesNotShareBackingSlices(t *testing.T) {
	units := sampleUnits()
	idx, err := NewIndex(units)
	require.NoError(t, err)

	units[1].Inputs[0].Name = "mutated"
	got, _ := idx.Get("clean_orders")
	assert.Equal(t, "orders", got.Inputs[0].Name)

	got.Inputs[0].Schema[0].Name = "mutated"
	again, _ := idx.Get("clean_orders")
	assert.Equal(t, "id", again.Inputs[0].Schema[0].Name)
}

func TestNewIndex_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		units   []model.UnitSummary
		wantErr string
	}{
		{
			name:    "empty id",
			units:   []model.UnitSummary{{ID: " ", Version: "1.0.0"}},
			wantErr: "unit_id is empty",
		},
		{
			name:    "duplicate id",
			units:   []model.UnitSummary{{ID: "a", Version: "1.0.0"}, {ID: "a", Version: "1.0.1"}},
			wantErr: `duplicate unit_id "a"`,
		},
		{
			name:    "bad version",
			units:   []model.UnitSummary{{ID: "a", Version: "one"}},
			wantErr: "not a semantic version",
		},
		{
			name: "duplicate port",
			units: []model.UnitSummary{{ID: "a", Version: "1", Inputs: testutil.Ports(
				testutil.In("x", "data"), testutil.In("x", "model"))}},
			wantErr: `duplicate port "x"`,
		},
		{
			name:    "port without kind",
			units:   []model.UnitSummary{{ID: "a", Version: "1", Outputs: testutil.Ports(testutil.Out("x", ""))}},
			wantErr: `port "x" has no kind`,
		},
		{
			name: "duplicate column",
			units: []model.UnitSummary{{ID: "a", Version: "1", Outputs: testutil.Ports(
				testutil.Out("x", "data", testutil.Col("c"), testutil.Col("c")))}},
			wantErr: `duplicate column "c"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewIndex(tc.units)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUnit)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestDecodeIndex(t *testing.T) {
	t.Run("json document", func(t *testing.T) {
		doc := `{"units": [{"unit_id": "a", "version": "1.2.0", "tags": ["x"],
			"inputs": [{"name": "in", "kind": "data", "required": true,
				"schema": [{"name": "id", "type": "string"}]}]}]}`
		units, err := DecodeIndex(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, "a", units[0].ID)
		assert.True(t, units[0].Inputs[0].Required)
		assert.Equal(t, "id", units[0].Inputs[0].Schema[0].Name)
	})

	t.Run("yaml document", func(t *testing.T) {
		doc := "units:\n  - unit_id: b\n    version: 0.1.0\n    category: prep\n"
		units, err := DecodeIndex(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.Equal(t, "prep", units[0].Category)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := DecodeIndex(strings.NewReader(`{"units": [{"unit_id": "a", "versoin": "1"}]}`))
		assert.ErrorContains(t, err, "versoin")
	})

	t.Run("empty document", func(t *testing.T) {
		units, err := DecodeIndex(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, units)
	})
}

func TestFileSource(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"index.json": `{"units": [{"unit_id": "a", "version": "1.0.0"}]}`,
	})

	units, err := FileSource{Path: dir + "/index.json"}.Units(ctx)
	require.NoError(t, err)
	require.Len(t, units, 1)

	_, err = FileSource{Path: dir + "/missing.json"}.Units(ctx)
	assert.Error(t, err)
}
