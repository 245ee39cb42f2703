package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/13rac1/cpam/internal/types"
	"github.com/Masterminds/semver/v3"
)

// ErrDependencyNotFound is returned when removing a name that is not listed.
var ErrDependencyNotFound = errors.New("dependency not found")

// AddDependency records name in cfg, replacing any previous entry, and
// returns the stored value. A non-empty source is stored as the value, with
// "#version" appended when a version is also given. Otherwise the version is
// stored, or "*" when it is empty.
func AddDependency(cfg *types.CpamConfig, name, version, source string) (string, error) {
	if cfg == nil {
		return "", errors.New("nil project document")
	}
	if strings.TrimSpace(name) == "" {
		return "", errors.New("dependency name is required")
	}

	value := DependencyValue(version, source)
	if cfg.Dependencies == nil {
		cfg.Dependencies = make(map[string]string)
	}
	cfg.Dependencies[name] = value
	return value, nil
}

// DependencyValue computes the stored value for a version/source pair.
func DependencyValue(version, source string) string {
	switch {
	case source != "" && version != "":
		return source + "#" + version
	case source != "":
		return source
	case version != "":
		return version
	default:
		return types.AnyVersion
	}
}

// RemoveDependency deletes name from cfg. An emptied table is reset to nil
// so the section disappears from the saved document.
func RemoveDependency(cfg *types.CpamConfig, name string) error {
	if cfg == nil || cfg.Dependencies == nil {
		return fmt.Errorf("%q: %w", name, ErrDependencyNotFound)
	}
	if _, ok := cfg.Dependencies[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrDependencyNotFound)
	}

	delete(cfg.Dependencies, name)
	if len(cfg.Dependencies) == 0 {
		cfg.Dependencies = nil
	}
	return nil
}

// SpecKind describes what a stored dependency value looks like.
type SpecKind int

const (
	SpecUnknown SpecKind = iota
	SpecAny
	SpecConstraint
	SpecSource
)

func (k SpecKind) String() string {
	switch k {
	case SpecAny:
		return "any"
	case SpecConstraint:
		return "version"
	case SpecSource:
		return "source"
	default:
		return "unknown"
	}
}

// ClassifySpec reports the kind of a dependency value. It is informational
// only: cpam stores every value as given.
func ClassifySpec(spec string) SpecKind {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == types.AnyVersion:
		return SpecAny
	case spec == "":
		return SpecUnknown
	case isSource(spec):
		return SpecSource
	}

	if _, err := semver.NewConstraint(spec); err == nil {
		return SpecConstraint
	}
	return SpecUnknown
}

func isSource(spec string) bool {
	if strings.Contains(spec, "://") || strings.HasPrefix(spec, "git@") {
		return true
	}
	if strings.HasSuffix(strings.SplitN(spec, "#", 2)[0], ".git") {
		return true
	}
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || strings.HasPrefix(spec, "/")
}
