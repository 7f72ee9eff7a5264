// Package config defines the declarative project model for kiln: the typed
// tree decoded from a Kiln.toml document (project, targets, profiles,
// settings, filters) together with the pure operations on it: the settings
// combinator and the platform/architecture filter matcher.
//
// The tree is decoded once, validated, and immutable afterwards. Every
// wildcard ("Any" platform or architecture, "Auto" target type) is encoded by
// absence: documents never spell a wildcard out, and the decoder rejects any
// attempt to.
package config
