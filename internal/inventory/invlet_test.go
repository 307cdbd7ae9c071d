// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

func TestValidInvlet(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'\\', true},
		{'}', true},
		{0, false},
		{'1', false},
		{' ', false},
		{'é', false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.ValidInvlet(tt.r))
		})
	}
	assert.Len(t, []rune(inventory.Chars), len(inventory.Chars), "letters are single bytes")
}

func TestFavorites_SetMovesLetter(t *testing.T) {
	f, err := inventory.NewFavorites(nil)
	require.NoError(t, err)

	f.Set('a', "rock")
	f.Set('b', "rock")
	f.Set('a', "rag")

	assert.True(t, f.Contains('a', "rag"))
	assert.False(t, f.Contains('a', "rock"))
	assert.Equal(t, []rune{'b'}, f.For("rock"))
	assert.Equal(t, map[string]string{"rock": "b", "rag": "a"}, f.Map())

	f.Erase('b')
	assert.Empty(t, f.For("rock"))
	assert.Equal(t, map[string]string{"rag": "a"}, f.Map())
}

func TestNewFavorites_Duplicates(t *testing.T) {
	f, err := inventory.NewFavorites(map[string]string{"rock": "ab", "rag": "b"})

	errutil.AssertErrorCode(t, err, inventory.CodeDuplicateInvlet)
	assert.True(t, f.Contains('b', "rock"), "the type sorting last keeps the letter")
	assert.Empty(t, f.For("rag"))
}

func TestParseAutoAssign(t *testing.T) {
	tests := []struct {
		in      string
		want    inventory.AutoAssign
		wantErr bool
	}{
		{"enabled", inventory.AutoAssignEnabled, false},
		{" Favorites ", inventory.AutoAssignFavorites, false},
		{"disabled", inventory.AutoAssignDisabled, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := inventory.ParseAutoAssign(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
