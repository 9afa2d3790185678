// Package configurator orchestrates the load → fit → place pipeline for each
// logical tent part and keeps it leak-free under rapid input changes.
package configurator

import (
	"fmt"

	"github.com/xglobaltents/3D-App/internal/engine/instance"
	"github.com/xglobaltents/3D-App/internal/tent"
)

// Kind selects the placement strategy for a part.
type Kind int

const (
	KindUprights Kind = iota
	KindBaseplates
	KindArchRibs
	KindConnectors
	KindPurlins
	KindGableSupports
)

// PartSpec describes one logical frame component: where its template asset
// lives and how its geometry is fitted, edited and placed.
type PartSpec struct {
	Name    string
	Folder  string
	File    string
	Kind    Kind
	Profile string // profile name targeted by fitting

	// ZUpSource marks assets authored Z-up; orientation is flattened to Y-up
	// before measuring.
	ZUpSource bool

	// Miter applies the eave miter cut to the fitted geometry.
	Miter bool

	// Mirror builds a mirrored clone for left-side instances instead of
	// reusing the right-side geometry.
	Mirror bool

	// UniformFit preserves authored proportions, scaling by the dominant
	// axis only (scanned baseplate geometry).
	UniformFit bool
}

// DefaultParts returns the standard frame component set for every variant.
// Asset paths follow the {tentType}/{variant}/frame/{part}.glb convention.
func DefaultParts(tentType, variant string) []PartSpec {
	frame := fmt.Sprintf("%s/%s/frame", tentType, variant)
	return []PartSpec{
		{Name: "Baseplates", Folder: frame, File: "baseplate.glb", Kind: KindBaseplates, UniformFit: true},
		{Name: "Uprights", Folder: frame, File: "upright.glb", Kind: KindUprights, Profile: "upright", ZUpSource: true},
		{Name: "Connectors", Folder: frame, File: "connector.glb", Kind: KindConnectors, Profile: "connector", Mirror: true},
		{Name: "ArchRibs", Folder: frame, File: "arch_rib.glb", Kind: KindArchRibs, Profile: "rafter", Miter: true, Mirror: true},
		{Name: "Purlins", Folder: "SharedFrames", File: "purlin.glb", Kind: KindPurlins, Profile: "purlin"},
		{Name: "GableSupports", Folder: "SharedFrames", File: "gable_support.glb", Kind: KindGableSupports, Profile: "upright", ZUpSource: true},
	}
}

// plan returns the instance transforms for this part under the given inputs.
func (p PartSpec) plan(spec *tent.Specification, numBays int) []instance.Transform {
	switch p.Kind {
	case KindUprights:
		return spec.UprightPlan(numBays)
	case KindBaseplates:
		return spec.BaseplatePlan(numBays)
	case KindArchRibs:
		return spec.ArchRibPlan(numBays)
	case KindConnectors:
		return spec.ConnectorPlan(numBays)
	case KindPurlins:
		return spec.PurlinPlan(numBays)
	case KindGableSupports:
		return spec.GableSupportPlan(numBays)
	}
	return nil
}

// targetSize returns the fitting target dimensions for this part.
func (p PartSpec) targetSize(spec *tent.Specification) [3]float32 {
	prof := spec.Profile(p.Profile)
	switch p.Kind {
	case KindUprights:
		return [3]float32{prof.Width, spec.EaveHeight, prof.Height}
	case KindBaseplates:
		return [3]float32{spec.Baseplate.Footprint, spec.Baseplate.Height, spec.Baseplate.Footprint}
	case KindArchRibs:
		return [3]float32{spec.HalfWidth, spec.RidgeHeight - spec.EaveHeight, prof.Width}
	case KindConnectors:
		return [3]float32{prof.Width, prof.Height, prof.Width}
	case KindPurlins:
		// Unit length along Z; the instance transform stretches it across
		// the tent.
		return [3]float32{prof.Width, prof.Height, 1}
	case KindGableSupports:
		return [3]float32{prof.Width, spec.EaveHeight, prof.Height}
	}
	return [3]float32{1, 1, 1}
}

// fitKey identifies a measurement in the fitter cache: one entry per part and
// profile-dimension tuple.
func (p PartSpec) fitKey(spec *tent.Specification) string {
	t := p.targetSize(spec)
	return fmt.Sprintf("%s|%s|%.4f,%.4f,%.4f", p.Name, spec.Name, t[0], t[1], t[2])
}
