//go:build !ebiten

package ui

import "faultmap/pkg/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.HeightMap, int) *Overlay { return &Overlay{} }

// Attach is a no-op in headless builds.
func (o *Overlay) Attach(core.HeightMap) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
