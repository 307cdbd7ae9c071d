// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

// templateLocation holds items that have nowhere real to be, such as UI
// previews and temporaries. Anything beyond a trivial query is an error.
type templateLocation struct{}

var nowhere Location = templateLocation{}

// TemplateLocation returns the shared placeholder location.
func TemplateLocation() Location { return nowhere }

func templateErr(op string, it *Item) error {
	return oops.Code(CodeTemplate).
		With("op", op).
		With("item_id", it.IDString()).
		Wrap(ErrTemplateLocation)
}

func (templateLocation) Variant() Variant { return VariantTemplate }

func (templateLocation) Where() Where { return WhereInvalid }

func (templateLocation) IsLoaded(*Item) bool { return false }

func (templateLocation) Position(it *Item) (geom.Tripoint, error) {
	return geom.Zero, oops.Code(CodeNoPosition).
		With("item_id", it.IDString()).
		Errorf("template location: %w", ErrNoPosition)
}

func (templateLocation) Describe(Viewer, *Item) string {
	return "Error: Nowhere"
}

func (templateLocation) ObtainCost(_ Handler, _ int, it *Item) (int, error) {
	return 0, templateErr("obtain_cost", it)
}

func (templateLocation) CheckForCorruption(*Item) bool { return true }

func (templateLocation) detach(it *Item) (Detached, error) {
	return Detached{}, templateErr("detach", it)
}

func (templateLocation) attach(d Detached) (Detached, error) {
	return d, templateErr("attach", d.peek())
}
