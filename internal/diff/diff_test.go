package diff

import (
	"fmt"
	"testing"

	"github.com/ariel-frischer/iconlog/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func icon(name string, w, h int) manifest.IconMetadata {
	return manifest.IconMetadata{
		ID:             "id-" + name,
		Name:           name,
		OriginalName:   name,
		NormalizedName: name,
		Width:          w,
		Height:         h,
	}
}

func withPayload(i manifest.IconMetadata, payload string) manifest.IconMetadata {
	i.VisualPayload = payload
	return i
}

func build(version string, icons ...manifest.IconMetadata) *manifest.Manifest {
	return &manifest.Manifest{
		Version:     version,
		GeneratedAt: "2024-01-15T00:00:00.000Z",
		TotalCount:  len(icons),
		Icons:       icons,
	}
}

func TestHasIconChanged(t *testing.T) {
	tests := map[string]struct {
		a, b manifest.IconMetadata
		want bool
	}{
		"same size no payload": {
			a: icon("IconA", 24, 24), b: icon("IconA", 24, 24), want: false,
		},
		"width differs no payload": {
			a: icon("IconA", 24, 24), b: icon("IconA", 16, 24), want: true,
		},
		"height differs no payload": {
			a: icon("IconA", 24, 24), b: icon("IconA", 24, 16), want: true,
		},
		"payloads equal, sizes differ": {
			a:    withPayload(icon("IconA", 24, 24), "<svg/>"),
			b:    withPayload(icon("IconA", 16, 16), "<svg/>"),
			want: false,
		},
		"payloads differ, sizes equal": {
			a:    withPayload(icon("IconA", 24, 24), "<svg a/>"),
			b:    withPayload(icon("IconA", 24, 24), "<svg b/>"),
			want: true,
		},
		"payload on one side only falls back to size": {
			a:    withPayload(icon("IconA", 24, 24), "<svg/>"),
			b:    icon("IconA", 24, 24),
			want: false,
		},
		"payload on one side only, size differs": {
			a:    icon("IconA", 24, 24),
			b:    withPayload(icon("IconA", 32, 24), "<svg/>"),
			want: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasIconChanged(tt.a, tt.b))
		})
	}
}

func TestCompute_ScenarioA(t *testing.T) {
	previous := build("1.0.0",
		withPayload(icon("IconArrowRight", 24, 24), "<svg arrow/>"),
		withPayload(icon("IconCheck", 24, 24), "<svg check/>"),
	)
	current := build("1.1.0",
		withPayload(icon("IconArrowRight", 24, 24), "<svg arrow/>"),
		withPayload(icon("IconClose", 24, 24), "<svg close/>"),
		withPayload(icon("IconCheck", 24, 24), "<svg check v2/>"),
	)

	d := Compute(current, previous)

	assert.Equal(t, []string{"IconClose"}, d.AddedNames())
	assert.Equal(t, []string{"IconCheck"}, d.ModifiedNames())
	assert.Empty(t, d.RemovedNames())
	assert.False(t, d.HasBreakingChanges())
	assert.Equal(t, "1 added, 1 modified, 0 removed", d.Summary())
}

func TestCompute_ScenarioB(t *testing.T) {
	previous := build("1.0.0", icon("IconA", 24, 24), icon("IconB", 24, 24))
	current := build("1.1.0", icon("IconA", 24, 24))

	d := Compute(current, previous)

	assert.Empty(t, d.Added)
	assert.Empty(t, d.Modified)
	assert.Equal(t, []string{"IconB"}, d.RemovedNames())
	assert.True(t, d.HasBreakingChanges())
}

func TestCompute_Idempotent(t *testing.T) {
	manifests := map[string]*manifest.Manifest{
		"empty":          build("1.0.0"),
		"no payloads":    build("1.0.0", icon("IconA", 24, 24), icon("IconB", 16, 16)),
		"with payloads":  build("1.0.0", withPayload(icon("IconA", 24, 24), "<svg/>")),
		"duplicate keys": build("1.0.0", icon("IconA", 24, 24), icon("IconA", 16, 16)),
	}

	for name, m := range manifests {
		t.Run(name, func(t *testing.T) {
			d := Compute(m, m)
			assert.True(t, d.IsEmpty())
			assert.Equal(t, 0, d.Count())
			assert.NotNil(t, d.Added)
			assert.NotNil(t, d.Modified)
			assert.NotNil(t, d.Removed)
		})
	}
}

func TestCompute_AgainstEmpty(t *testing.T) {
	m := build("1.0.0", icon("IconA", 24, 24), icon("IconB", 24, 24), icon("IconC", 24, 24))

	added := Compute(m, manifest.Empty())
	assert.Len(t, added.Added, len(m.Icons))
	assert.Empty(t, added.Modified)
	assert.Empty(t, added.Removed)

	removed := Compute(manifest.Empty(), m)
	assert.Len(t, removed.Removed, len(m.Icons))
	assert.Empty(t, removed.Added)
	assert.Empty(t, removed.Modified)

	assert.Equal(t, added.AddedNames(), Compute(m, nil).AddedNames(), "nil previous acts as empty")
	assert.Equal(t, removed.RemovedNames(), Compute(nil, m).RemovedNames(), "nil current acts as empty")
}

func TestCompute_Partition(t *testing.T) {
	for seed := 0; seed < 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			var prevIcons, curIcons []manifest.IconMetadata
			for i := 0; i < 12; i++ {
				name := fmt.Sprintf("Icon%d", i)
				switch (i + seed) % 4 {
				case 0:
					prevIcons = append(prevIcons, icon(name, 24, 24))
				case 1:
					curIcons = append(curIcons, icon(name, 24, 24))
				case 2:
					prevIcons = append(prevIcons, icon(name, 24, 24))
					curIcons = append(curIcons, icon(name, 24+seed%2, 24))
				case 3:
					prevIcons = append(prevIcons, icon(name, 16, 16))
					curIcons = append(curIcons, icon(name, 16, 16), icon(name, 16, 16+seed%3))
				}
			}

			d := Compute(build("2", curIcons...), build("1", prevIcons...))

			seen := make(map[string]string)
			for bucket, names := range map[string][]string{
				"added":    d.AddedNames(),
				"modified": d.ModifiedNames(),
				"removed":  d.RemovedNames(),
			} {
				for _, n := range names {
					other, dup := seen[n]
					require.False(t, dup, "%s appears in both %s and %s", n, other, bucket)
					seen[n] = bucket
				}
			}
		})
	}
}

func TestCompute_DuplicateKeysLastWriteWins(t *testing.T) {
	previous := build("1", icon("IconA", 24, 24))
	current := build("2", icon("IconA", 24, 24), icon("IconA", 32, 32))

	d := Compute(current, previous)

	require.Len(t, d.Modified, 1, "duplicate key reported once")
	assert.Equal(t, 32, d.Modified[0].Width, "last icon with the key is compared")
	assert.Empty(t, d.Added)

	unchanged := Compute(build("2", icon("IconA", 32, 32), icon("IconA", 24, 24)), previous)
	assert.True(t, unchanged.IsEmpty())
}

func TestCompute_Ordering(t *testing.T) {
	previous := build("1", icon("IconZ", 1, 1), icon("IconY", 1, 1), icon("IconM", 1, 1))
	current := build("2", icon("IconC", 1, 1), icon("IconM", 2, 2), icon("IconA", 1, 1))

	d := Compute(current, previous)

	assert.Equal(t, []string{"IconC", "IconA"}, d.AddedNames())
	assert.Equal(t, []string{"IconM"}, d.ModifiedNames())
	assert.Equal(t, []string{"IconZ", "IconY"}, d.RemovedNames())
}
