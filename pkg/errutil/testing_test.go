// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("MY_CODE").Errorf("test error")
	errutil.AssertErrorCode(t, err, "MY_CODE")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("item_id", "123").Errorf("test error")
	errutil.AssertErrorContext(t, err, "item_id", "123")
}

func TestRecorder(t *testing.T) {
	var rec errutil.Recorder
	_ = rec.Reporter().Report("x", oops.Code("A").Errorf("a"))
	_ = rec.Reporter().Report("y", oops.Code("B").Errorf("b"))
	assert.Equal(t, []string{"A", "B"}, rec.Codes)
}
