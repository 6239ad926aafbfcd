// Package internal holds the deprecation detection engine.
//
// Engine parses Go and Gno sources, looks for calls to functions and methods
// registered as deprecated, and turns every hit into a types.DeprecationEvent
// ready to be handed to a formatter.DeprecationFormatter.
//
// The registry starts with the deprecations of the gno standard library
// (see DefaultRules) and is extended by configured rules. Hits can be
// suppressed per line or per statement with //nolint:deprecated.
//
// Usage:
//
//	engine, err := internal.NewEngine(nil)
//	if err != nil {
//	    // handle error
//	}
//	engine.IgnorePath("testdata/")
//
//	events, err := engine.Run("path/to/file.gno")
//	if err != nil {
//	    // handle error
//	}
//
// This package is intended for internal use within depwarn and should not be
// imported by external packages.
package internal
