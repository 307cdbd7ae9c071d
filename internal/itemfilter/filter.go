// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package itemfilter parses the item filter strings typed into pickup menus
// and loot zones.
//
// A filter is a comma separated list of terms. A term is matched against the
// item name unless it starts with a prefix:
//
//	m:steel     made of steel
//	f:WEARABLE  has the WEARABLE flag
//	q:CUT       has the CUT quality at any level
//
// Matching ignores case. A term starting with '-' excludes the items it
// matches. An item passes when it matches no excluding term and matches at
// least one of the other terms; a filter with only excluding terms passes
// everything else.
package itemfilter

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// ErrInvalid is returned for a filter string that does not parse.
var ErrInvalid = errors.New("invalid item filter")

// CodeInvalid is the oops code of ErrInvalid.
const CodeInvalid = "INVALID_ITEM_FILTER"

// Term prefixes.
const (
	PrefixName     = ""
	PrefixMaterial = "m"
	PrefixFlag     = "f"
	PrefixQuality  = "q"
)

var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Not", Pattern: `-`},
	{Name: "Prefix", Pattern: `[a-zA-Z]:`},
	{Name: "Text", Pattern: `[^,]+`},
})

// ast is the parsed form of a filter.
//
// Grammar: term ("," term)*
type ast struct {
	Terms []*termAST `parser:"@@ (Comma @@)*"`
}

type termAST struct {
	Exclude bool   `parser:"@Not?"`
	Prefix  string `parser:"@Prefix?"`
	Text    string `parser:"@Text"`
}

var parser = participle.MustBuild[ast](participle.Lexer(filterLexer))

type term struct {
	exclude bool
	prefix  string
	text    string
}

// Filter is a compiled item filter. The zero Filter matches every item.
type Filter struct {
	src   string
	terms []term
}

// Parse compiles s. The empty string matches every item.
func Parse(s string) (Filter, error) {
	if strings.TrimSpace(s) == "" {
		return Filter{src: s}, nil
	}
	tree, err := parser.ParseString("", s)
	if err != nil {
		return Filter{}, oops.Code(CodeInvalid).
			With("filter", s).
			Wrapf(ErrInvalid, "%s", err.Error())
	}
	f := Filter{src: s, terms: make([]term, 0, len(tree.Terms))}
	for _, t := range tree.Terms {
		prefix := strings.ToLower(strings.TrimSuffix(t.Prefix, ":"))
		switch prefix {
		case PrefixName, PrefixMaterial, PrefixFlag, PrefixQuality:
		default:
			return Filter{}, oops.Code(CodeInvalid).
				With("filter", s).
				With("prefix", prefix).
				Wrapf(ErrInvalid, "unknown prefix %q", prefix+":")
		}
		text := strings.ToLower(strings.TrimSpace(t.Text))
		f.terms = append(f.terms, term{exclude: t.Exclude, prefix: prefix, text: text})
	}
	return f, nil
}

// String returns the source the filter was parsed from.
func (f Filter) String() string { return f.src }

// Match reports whether it passes the filter. The null item never passes.
func (f Filter) Match(it *item.Item) bool {
	if it == nil || it.IsNull() {
		return false
	}
	included, anyInclude := false, false
	for _, t := range f.terms {
		hit := t.match(it)
		if t.exclude {
			if hit {
				return false
			}
			continue
		}
		anyInclude = true
		included = included || hit
	}
	return included || !anyInclude
}

func (t term) match(it *item.Item) bool {
	typ := it.Type()
	switch t.prefix {
	case PrefixMaterial:
		for _, m := range typ.Materials {
			if strings.Contains(strings.ToLower(m), t.text) {
				return true
			}
		}
		return false
	case PrefixFlag:
		return it.HasFlag(strings.ToUpper(t.text))
	case PrefixQuality:
		for q, level := range typ.Qualities {
			if level > 0 && strings.EqualFold(q, t.text) {
				return true
			}
		}
		return false
	default:
		return strings.Contains(strings.ToLower(it.TypeName()), t.text)
	}
}
