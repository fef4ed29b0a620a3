// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/volume"
)

func TestSortMaterials(t *testing.T) {
	opaqueA := &volume.ColorMaterial{Color: color.NRGBA{R: 255, A: 255}}
	glass := &volume.ColorMaterial{Color: color.NRGBA{B: 255, A: 100}}
	opaqueB := &volume.ColorMaterial{Color: color.NRGBA{G: 255, A: 255}}
	vol := &volume.VolumeProjectionMaterial{}

	got := SortMaterials([]volume.Material{glass, opaqueA, vol, nil, opaqueB})
	want := []volume.Material{opaqueA, opaqueB, glass, vol}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSortMaterialsEmpty(t *testing.T) {
	if got := SortMaterials(nil); len(got) != 0 {
		t.Errorf("SortMaterials(nil) = %v, want empty", got)
	}
}
