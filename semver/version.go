// Package semver evaluates the version constraint language used by
// `pragma solidity` directives: npm-style ranges such as `^0.8.0`,
// `>=0.6.0 <0.8.0`, `0.8.*`, `~1.2`, `1.0.0 - 2.0.0` and `||`
// alternatives.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed semantic version. Prerelease holds the raw
// dot-separated identifiers after the hyphen ("beta.1"), empty for
// release versions. Build metadata is kept but never ordered on.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

// ParseVersion parses a full "major.minor.patch" version, with an
// optional "v" prefix and optional prerelease and build suffixes.
// Partial versions and wildcards belong to the constraint language,
// not here.
func ParseVersion(s string) (Version, error) {
	p, err := parsePartial(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	if p.precision < 3 {
		return Version{}, fmt.Errorf("invalid version %q: major, minor and patch are all required", s)
	}
	return p.version(), nil
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// Compare orders two versions by semver precedence: the numeric triple
// first, then prerelease identifiers, where a release sorts above any
// prerelease of the same triple. It returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	if c := compareUint(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, o.Patch); c != 0 {
		return c
	}
	return comparePrerelease(v.Prerelease, o.Prerelease)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := comparePrereleaseID(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return compareUint(uint64(len(as)), uint64(len(bs)))
}

// comparePrereleaseID follows the semver identifier rules: numeric
// identifiers compare numerically and sort below alphanumeric ones,
// alphanumeric ones compare lexically.
func comparePrereleaseID(a, b string) int {
	an, aerr := strconv.ParseUint(a, 10, 64)
	bn, berr := strconv.ParseUint(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return compareUint(an, bn)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// partial is a version with trailing components left open, either
// omitted ("0.8") or wildcarded ("0.8.x"). precision counts the
// concrete leading components, 0 through 3.
type partial struct {
	major, minor, patch uint64
	precision           int
	prerelease          string
	build               string
}

func (p partial) version() Version {
	return Version{
		Major:      p.major,
		Minor:      p.minor,
		Patch:      p.patch,
		Prerelease: p.prerelease,
		Build:      p.build,
	}
}

// bump returns the smallest version above everything the partial
// covers: 1 becomes 2.0.0 and 1.2 becomes 1.3.0. A full partial has
// nothing open to bump and comes back unchanged.
func (p partial) bump() Version {
	switch p.precision {
	case 1:
		return Version{Major: p.major + 1}
	case 2:
		return Version{Major: p.major, Minor: p.minor + 1}
	}
	return p.version()
}

func parsePartial(s string) (partial, error) {
	var p partial
	core := s
	if i := strings.IndexByte(core, '+'); i >= 0 {
		p.build = core[i+1:]
		core = core[:i]
		if p.build == "" {
			return partial{}, fmt.Errorf("empty build metadata")
		}
	}
	if i := strings.IndexByte(core, '-'); i >= 0 {
		p.prerelease = core[i+1:]
		core = core[:i]
		if p.prerelease == "" {
			return partial{}, fmt.Errorf("empty prerelease")
		}
	}
	if core == "" {
		return partial{}, fmt.Errorf("missing version number")
	}
	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return partial{}, fmt.Errorf("too many version components in %q", s)
	}
	slots := []*uint64{&p.major, &p.minor, &p.patch}
	for i, part := range parts {
		if isWildcard(part) {
			// Anything after a wildcard is open as well.
			break
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return partial{}, fmt.Errorf("invalid version component %q", part)
		}
		*slots[i] = n
		p.precision = i + 1
	}
	if p.prerelease != "" && p.precision < 3 {
		return partial{}, fmt.Errorf("prerelease on incomplete version %q", s)
	}
	return p, nil
}

func isWildcard(s string) bool {
	return s == "*" || s == "x" || s == "X"
}
