package diff

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectsIdenticalSnapshotsIsEmpty(t *testing.T) {
	photo := "products/1/a.png"
	now := time.Now()
	x := Snapshot{
		"name":       "Widget",
		"unit_price": decimal.RequireFromString("5.00"),
		"photo":      &photo,
		"updated_at": now,
		"meta":       map[string]any{"a": 1},
	}
	out := Objects(x, x, Options{DateFields: []string{"updated_at"}, ObjectFields: []string{"meta"}})
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestObjectsReportsOnlyChangedKeys(t *testing.T) {
	existing := Snapshot{"name": "Widget", "sku": "W-1", "is_active": true}
	candidate := Snapshot{"name": "Widget", "sku": "W-2", "is_active": false}

	out := Objects(existing, candidate, Options{})
	assert.Equal(t, Snapshot{"sku": "W-2", "is_active": false}, out)
	assert.Equal(t, "W-1", existing["sku"], "inputs must not be mutated")
}

func TestObjectsNormalization(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a, b := "x", "x"

	cases := []struct {
		name      string
		existing  Snapshot
		candidate Snapshot
		opts      Options
		want      Snapshot
	}{
		{
			name:      "decimals with different scale are equal",
			existing:  Snapshot{"price": decimal.RequireFromString("5")},
			candidate: Snapshot{"price": decimal.RequireFromString("5.000")},
			want:      Snapshot{},
		},
		{
			name:      "dates in different zones are equal",
			existing:  Snapshot{"at": instant},
			candidate: Snapshot{"at": instant.In(loc)},
			opts:      Options{DateFields: []string{"at"}},
			want:      Snapshot{},
		},
		{
			name:      "date string matches time value",
			existing:  Snapshot{"at": instant},
			candidate: Snapshot{"at": "2024-03-01T07:00:00-05:00"},
			opts:      Options{DateFields: []string{"at"}},
			want:      Snapshot{},
		},
		{
			name:      "distinct pointers to equal strings are equal",
			existing:  Snapshot{"photo": &a},
			candidate: Snapshot{"photo": &b},
			want:      Snapshot{},
		},
		{
			name:      "nil pointer differs from value",
			existing:  Snapshot{"photo": &a},
			candidate: Snapshot{"photo": (*string)(nil)},
			want:      Snapshot{"photo": (*string)(nil)},
		},
		{
			name:      "object fields compare structurally",
			existing:  Snapshot{"meta": map[string]any{"k": 1}},
			candidate: Snapshot{"meta": map[string]int{"k": 1}},
			opts:      Options{ObjectFields: []string{"meta"}},
			want:      Snapshot{},
		},
		{
			name:      "ignored keys are skipped",
			existing:  Snapshot{"updated_at": instant, "name": "a"},
			candidate: Snapshot{"updated_at": instant.Add(time.Hour), "name": "a"},
			opts:      Options{Ignore: []string{"updated_at"}},
			want:      Snapshot{},
		},
		{
			name:      "key missing from candidate",
			existing:  Snapshot{"name": "a", "sku": "s"},
			candidate: Snapshot{"name": "a"},
			want:      Snapshot{"sku": nil},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Objects(tc.existing, tc.candidate, tc.opts))
		})
	}
}

func TestArrayEntities(t *testing.T) {
	oldArr := []Snapshot{
		{"id": "1", "qty": 1},
		{"id": "2", "qty": 2},
		{"id": "3", "qty": 3},
	}
	newArr := []Snapshot{
		{"id": "3", "qty": 3},
		{"id": "2", "qty": 20},
		{"id": "4", "qty": 4},
		{"qty": 5},
	}

	out := ArrayEntities(oldArr, newArr, ArrayOptions{})

	require.Len(t, out.Added, 2)
	assert.Equal(t, "4", out.Added[0]["id"])
	assert.Equal(t, 5, out.Added[1]["qty"])

	require.Len(t, out.Deleted, 1)
	assert.Equal(t, "1", out.Deleted[0]["id"])

	require.Len(t, out.Modified, 1)
	assert.Equal(t, "2", out.Modified[0].ID)
	assert.Equal(t, Snapshot{"qty": 20}, out.Modified[0].Changes)
	assert.False(t, out.Empty())
}

func TestArrayEntitiesSameSetIsEmpty(t *testing.T) {
	arr := []Snapshot{{"key": 1, "v": "a"}, {"key": 2, "v": "b"}}
	reversed := []Snapshot{arr[1], arr[0]}
	assert.True(t, ArrayEntities(arr, reversed, ArrayOptions{IDField: "key"}).Empty())
}

func TestArrayEntitiesRepeatedNewIDAddedOnce(t *testing.T) {
	newArr := []Snapshot{{"id": "x", "v": 1}, {"id": "x", "v": 2}}

	out := ArrayEntities(nil, newArr, ArrayOptions{})

	require.Len(t, out.Added, 1)
	assert.Equal(t, 1, out.Added[0]["v"])
	assert.Empty(t, out.Deleted)
	assert.Empty(t, out.Modified)
}
