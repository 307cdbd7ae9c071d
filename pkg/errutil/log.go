// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package errutil implements the debug-message channel used to report
// consistency violations without aborting the running game.
package errutil

import (
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		attrs := []any{
			"error", oopsErr.Error(),
		}
		if code := oopsErr.Code(); code != nil {
			attrs = append(attrs, "code", code)
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, "context", ctx)
		}
		logger.Error(msg, attrs...)
	} else {
		logger.Error(msg, "error", err)
	}
}

// Code returns the oops code attached to err, or "UNKNOWN" when err carries
// none. The result is suitable as a metric label.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := oopsErr.Code(); code != nil {
			if s := fmt.Sprint(code); s != "" {
				return s
			}
		}
	}
	return "UNKNOWN"
}

// Reporter is the debugmsg channel. Report logs the violation and notifies
// the optional hook, then returns err unchanged so call sites can write
// `return zero, r.Report(msg, err)`.
type Reporter struct {
	Logger *slog.Logger
	// OnReport is called with the error code of every reported error.
	OnReport func(code string)
}

// Report logs err and returns it.
func (r *Reporter) Report(msg string, err error) error {
	if err == nil {
		return nil
	}
	var logger *slog.Logger
	if r != nil {
		logger = r.Logger
	}
	LogError(logger, msg, err)
	if r != nil && r.OnReport != nil {
		r.OnReport(Code(err))
	}
	return err
}
