// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"sort"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// BindingKind classifies a reflected resource binding.
type BindingKind uint8

const (
	// BindingUniform is a var<uniform> buffer binding.
	BindingUniform BindingKind = iota
	// BindingTexture is a sampled texture binding.
	BindingTexture
	// BindingSampler is a sampler binding.
	BindingSampler
)

// String returns the binding kind name.
func (k BindingKind) String() string {
	switch k {
	case BindingUniform:
		return "uniform"
	case BindingTexture:
		return "texture"
	case BindingSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// Binding describes one resource declared by a WGSL module.
type Binding struct {
	Name    string
	Group   uint32
	Binding uint32
	Kind    BindingKind
	// Size is the uniform buffer size in bytes, rounded up to 16. Zero for
	// textures and samplers.
	Size uint64
}

// ReflectBindings lowers source with naga and returns the uniform, texture
// and sampler bindings of its module-scope variables, ordered by group then
// binding. Storage buffers and unbound globals are not reported.
func ReflectBindings(source string) ([]Binding, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("reflect wgsl: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("reflect wgsl: %w", err)
	}
	return reflectModule(module), nil
}

func reflectModule(module *ir.Module) []Binding {
	var out []Binding
	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		b := Binding{
			Name:    gv.Name,
			Group:   gv.Binding.Group,
			Binding: gv.Binding.Binding,
		}
		switch gv.Space {
		case ir.SpaceUniform:
			b.Kind = BindingUniform
			b.Size = alignUniform(uint64(ir.TypeSize(module, gv.Type)))
		case ir.SpaceHandle:
			if int(gv.Type) >= len(module.Types) {
				continue
			}
			switch module.Types[gv.Type].Inner.(type) {
			case ir.SamplerType:
				b.Kind = BindingSampler
			case ir.ImageType:
				b.Kind = BindingTexture
			default:
				continue
			}
		default:
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}

// alignUniform rounds a uniform size up to the 16-byte buffer alignment.
func alignUniform(n uint64) uint64 {
	return (n + 15) &^ 15
}
