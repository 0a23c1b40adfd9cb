// Package rmscript provides the public API for the rmscript compiler.
package rmscript

import (
	"nickandperla.net/rmscript/internal/diag"
	"nickandperla.net/rmscript/internal/ir"
	"nickandperla.net/rmscript/internal/pose"
	"nickandperla.net/rmscript/internal/semantic"
	"nickandperla.net/rmscript/internal/store"
)

// Option configures a Compiler.
type Option func(*Compiler)

// WithName sets the script name instead of deriving it from the filename.
func WithName(name string) Option {
	return func(c *Compiler) {
		c.name = name
	}
}

// WithLimits replaces the physical warn-threshold table.
func WithLimits(limits Limits) Option {
	return func(c *Compiler) {
		c.limits = limits
	}
}

// WithStore sets the script library store.
func WithStore(s Store) Option {
	return func(c *Compiler) {
		c.store = s
	}
}

// WithSQLiteStore configures SQLite script persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(c *Compiler) {
		s, err := store.NewSQLite(path)
		if err == nil {
			c.store = s
		}
	}
}

// WithMemoryStore configures an in-memory script store (for testing).
func WithMemoryStore() Option {
	return func(c *Compiler) {
		c.store = store.NewMemory()
	}
}

// Diagnostic is a compiler error or warning with its source position.
type Diagnostic = diag.Diagnostic

// Severity distinguishes errors from warnings.
type Severity = diag.Severity

// Diagnostic severities.
const (
	SeverityError   = diag.Error
	SeverityWarning = diag.Warning
)

// Action is one entry of the compiled IR stream.
type Action = ir.Action

// IR entry types.
type (
	Movement  = ir.Movement
	Wait      = ir.Wait
	Picture   = ir.Picture
	PlaySound = ir.PlaySound
	LoopSound = ir.LoopSound
)

// Matrix4 is a 4x4 rigid transform (rotation upper-left, translation in the
// last column, column-vector convention).
type Matrix4 = pose.Matrix4

// PlayMode selects how sound playback interacts with the action stream.
type PlayMode = ir.PlayMode

// Play modes.
const (
	PlayAsync           = ir.PlayAsync
	PlayBlockUntilDone  = ir.PlayBlockUntilDone
	PlayBlockForSeconds = ir.PlayBlockForSeconds
)

// Interp selects a movement interpolation profile.
type Interp = ir.Interp

// Interpolation profiles.
const (
	InterpMinjerk = ir.Minjerk
	InterpLinear  = ir.Linear
	InterpEase    = ir.Ease
	InterpCartoon = ir.Cartoon
)

// Limits holds the physical warn thresholds used by the semantic phase.
type Limits = semantic.Limits

// DefaultLimits returns the stock robot limit table.
func DefaultLimits() Limits {
	return semantic.DefaultLimits()
}

// Store is the interface for script persistence.
type Store = store.Store

// Script is a persisted script library entry.
type Script = store.Script
