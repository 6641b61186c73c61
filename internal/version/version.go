package version

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// Version is the semantic version of tilde.
const Version = "0.1.0"

// Parse parses a version string using hashicorp's go-version library
func Parse(v string) (*version.Version, error) {
	return version.NewVersion(v)
}

// Current returns the current version as a parsed version object
// Panics if Version constant is not a valid semantic version
func Current() *version.Version {
	v, err := Parse(Version)
	if err != nil {
		panic(fmt.Sprintf("invalid version constant %q: %v", Version, err))
	}
	return v
}

// String returns the current version as a string
func String() string {
	return Version
}

// Banner is the line printed by `tilde version`.
func Banner() string {
	return "tilde version v" + Current().String()
}
