package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
)

// Load reads and decodes the project document at path, enforcing the closed
// schema, the minimum-version gate and the non-empty-target rule.
// toolVersion is the running tool's semantic version, without "v" prefix.
// The returned Project is fully defaulted and must not be mutated.
func Load(path, toolVersion string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSchemaError(fmt.Sprintf("failed to open config file %q", path), err)
	}
	return Parse(data, path, toolVersion)
}

// Parse decodes a project document from raw bytes. Split out from Load so
// tests and tooling can feed documents without touching the filesystem.
func Parse(data []byte, path, toolVersion string) (*Project, error) {
	var proj Project
	md, err := toml.Decode(string(data), &proj)
	if err != nil {
		return nil, NewSchemaError(fmt.Sprintf("failed to decode %q", path), err)
	}

	// Closed schema: every key in the document must land in the model.
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, NewSchemaError(
			fmt.Sprintf("unknown key %q in %q", undecoded[0].String(), path), nil)
	}

	if err := validator.New().Struct(&proj); err != nil {
		return nil, NewSchemaError(fmt.Sprintf("invalid project document %q", path), err)
	}

	if err := checkVersionGate(proj.Info.MinKilnVersion, toolVersion); err != nil {
		return nil, err
	}

	if len(proj.Targets) == 0 {
		return nil, NewProjectError("no targets in project configuration", nil)
	}

	proj.TargetNames = targetOrder(md)
	if len(proj.TargetNames) != len(proj.Targets) {
		// Should not happen: every targets.<name> table decodes into the map.
		return nil, NewSchemaError("target table order does not match target set", nil)
	}

	return &proj, nil
}

// targetOrder recovers the declaration order of [targets.<name>] tables from
// the decoder metadata. Positional invariants downstream rely on this order.
func targetOrder(md toml.MetaData) []string {
	var names []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) >= 2 && key[0] == "targets" && !seen[key[1]] {
			seen[key[1]] = true
			names = append(names, key[1])
		}
	}
	return names
}

// checkVersionGate rejects projects declaring a minimum tool version newer
// than the running tool.
func checkVersionGate(minVersion, toolVersion string) error {
	if minVersion == "" {
		return nil
	}
	want, have := "v"+minVersion, "v"+toolVersion
	if !semver.IsValid(want) {
		return NewSchemaError(fmt.Sprintf("invalid min_kiln_version %q", minVersion), nil)
	}
	if semver.Compare(want, have) > 0 {
		return NewVersionError(
			fmt.Sprintf("project requires kiln >= %s but running %s", minVersion, toolVersion), nil)
	}
	return nil
}

// LoadEnv captures the compiler-related variables of the process environment.
func LoadEnv() Env {
	return Env{
		CFlags:   os.Getenv("CFLAGS"),
		CXXFlags: os.Getenv("CXXFLAGS"),
		LDFlags:  os.Getenv("LDFLAGS"),
	}
}
