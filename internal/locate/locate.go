// Package locate predicts where a CMake build left the project executable.
//
// cpam does not read the generated build files, so it cannot compute the
// output location exactly. Instead it predicts a primary path from the
// generator and build mode, lists fallback locations used by other layouts,
// and probes them in a fixed order until one exists.
package locate

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/13rac1/cpam/internal/platform"
)

// Kind classifies a generator by where it places build output.
type Kind int

const (
	// KindUnknown is a generator name cpam does not recognize. It is laid out
	// like a single-configuration generator.
	KindUnknown Kind = iota
	// KindSingleConfig generators (Makefiles, Ninja) write to the build root.
	KindSingleConfig
	// KindMultiConfig generators write to a Debug/ or Release/ subdirectory.
	KindMultiConfig
)

func (k Kind) String() string {
	switch k {
	case KindSingleConfig:
		return "single-config"
	case KindMultiConfig:
		return "multi-config"
	default:
		return "unknown"
	}
}

// Classify maps a generator name to a Kind using the host profile.
func Classify(generator string, p platform.Profile) Kind {
	for _, frag := range p.MultiConfigGenerators {
		if frag != "" && strings.Contains(generator, frag) {
			return KindMultiConfig
		}
	}
	if strings.Contains(generator, "Makefiles") || strings.Contains(generator, "Ninja") {
		return KindSingleConfig
	}
	return KindUnknown
}

// Request describes the build whose executable should be found.
type Request struct {
	BuildDir  string
	Name      string
	Generator string
	Release   bool
}

// Config returns the CMake configuration name for the request.
func (r Request) Config() string {
	if r.Release {
		return "Release"
	}
	return "Debug"
}

// Plan is the predicted primary path plus fallbacks, in probe order.
type Plan struct {
	Primary   string
	Fallbacks []string
}

// Candidates returns the primary path followed by the fallbacks with
// duplicates removed, keeping the first occurrence.
func (pl Plan) Candidates() []string {
	seen := make(map[string]bool, len(pl.Fallbacks)+1)
	out := make([]string, 0, len(pl.Fallbacks)+1)
	for _, p := range append([]string{pl.Primary}, pl.Fallbacks...) {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Predict computes the plan for req on the given host.
func Predict(req Request, p platform.Profile) Plan {
	file := req.Name + p.ExeSuffix

	var primary string
	switch Classify(req.Generator, p) {
	case KindMultiConfig:
		primary = joinPath(req.BuildDir, req.Config(), file)
	default:
		primary = joinPath(req.BuildDir, file)
	}

	fallbacks := make([]string, 0, len(p.FallbackDirs))
	for _, dir := range p.FallbackDirs {
		dir = strings.ReplaceAll(dir, "{name}", req.Name)
		fallbacks = append(fallbacks, joinPath(req.BuildDir, dir, file))
	}

	return Plan{Primary: primary, Fallbacks: fallbacks}
}

// joinPath joins with forward slashes so predictions are identical on every
// host. Windows accepts them. A relative result always carries a directory
// part ("./demo", not "demo") so that running it never searches PATH.
func joinPath(elem ...string) string {
	p := path.Join(elem...)
	if !path.IsAbs(p) && !strings.Contains(p, "/") {
		p = "./" + p
	}
	return p
}

// Probe reports whether a candidate path holds the executable.
type Probe func(path string) bool

// FileExists is the default Probe: the path exists and is not a directory.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// NotFoundError reports that no candidate path held the executable.
type NotFoundError struct {
	// Probed lists every path checked, in probe order.
	Probed []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("executable not found (checked %d paths: %s)", len(e.Probed), strings.Join(e.Probed, ", "))
}

// Find probes the plan in order and returns the first existing path. The
// fallbacks are not consulted when the primary path exists.
func Find(pl Plan, probe Probe) (string, error) {
	if probe == nil {
		probe = FileExists
	}

	if probe(pl.Primary) {
		return pl.Primary, nil
	}

	candidates := pl.Candidates()
	for _, c := range candidates[1:] {
		if probe(c) {
			return c, nil
		}
	}

	return "", &NotFoundError{Probed: candidates}
}

// Resolve predicts and probes in one step.
func Resolve(req Request, p platform.Profile, probe Probe) (string, error) {
	return Find(Predict(req, p), probe)
}
