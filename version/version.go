// Package version parses and orders Unity editor version strings
// (spec §4.3) and exposes the feature predicates every higher-level parser
// gates its shape on.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// ReleaseType is the single letter following the build number
// (MAJOR.MINOR.BUILD{a|b|c|f|p|x}N).
type ReleaseType byte

// Release types, ordered a < b < c < f < p < x per spec §4.3.
const (
	Alpha      ReleaseType = 'a'
	Beta       ReleaseType = 'b'
	China      ReleaseType = 'c'
	Final      ReleaseType = 'f'
	Patch      ReleaseType = 'p'
	Experiment ReleaseType = 'x'
)

var releaseOrder = map[ReleaseType]int{
	Alpha: 0, Beta: 1, China: 2, Final: 3, Patch: 4, Experiment: 5,
}

// Version is a parsed Unity editor version.
type Version struct {
	Major, Minor, Build int
	Type                ReleaseType
	Number              int
}

// InvalidVersionError is returned when the input does not match the
// MAJOR.MINOR.BUILD{a|b|c|f|p|x}N grammar.
type InvalidVersionError struct {
	Input string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("version: invalid unity version string %q", e.Input)
}

// Parse parses a Unity version string such as "2019.4.31f1" or "5.6.0".
// The suffix defaults to "f0" when absent, per spec §4.3.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &InvalidVersionError{Input: s}
	}

	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, &InvalidVersionError{Input: s}
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}

	v := Version{Major: major, Minor: minor, Type: Final, Number: 0}
	if len(parts) == 2 {
		return v, nil
	}

	rest := parts[2]
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 {
		return Version{}, &InvalidVersionError{Input: s}
	}
	build, err := strconv.Atoi(rest[:i])
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	v.Build = build

	tail := rest[i:]
	if tail == "" {
		return v, nil
	}

	rt := ReleaseType(tail[0])
	if _, ok := releaseOrder[rt]; !ok {
		return Version{}, &InvalidVersionError{Input: s}
	}
	v.Type = rt

	numStr := tail[1:]
	if numStr == "" {
		v.Number = 0
		return v, nil
	}
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s}
	}
	v.Number = num
	return v, nil
}

// MustParse parses s and panics on error; intended for fixed literals.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders versions by (major, minor, build, type_ord, number),
// returning -1, 0 or 1.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return cmpInt(a.Major, b.Major)
	}
	if a.Minor != b.Minor {
		return cmpInt(a.Minor, b.Minor)
	}
	if a.Build != b.Build {
		return cmpInt(a.Build, b.Build)
	}
	at, bt := releaseOrder[a.Type], releaseOrder[b.Type]
	if at != bt {
		return cmpInt(at, bt)
	}
	return cmpInt(a.Number, b.Number)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts before b.
func Less(a, b Version) bool { return Compare(a, b) < 0 }

// AtLeast reports whether v is >= the given major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// Feature is a named capability gated on Unity version, per spec §4.3.
type Feature string

// Feature predicates used by the parsers.
const (
	FeatureBigIDs                Feature = "BigIds"
	FeatureTypeTreeDefaultEnable Feature = "TypeTreeDefaultEnabled"
	FeatureScriptTypeIndex       Feature = "ScriptTypeIndex"
	FeatureRefTypes              Feature = "RefTypes"
	FeatureUnityFS               Feature = "UnityFS"
	FeatureLZ4Compression        Feature = "Lz4Compression"
	FeatureBrotli                Feature = "Brotli"
	FeatureAlignment8            Feature = "Alignment8"
)

// Supports evaluates a feature predicate against v, per spec §4.3's table:
//
//	BigIds (>=2018.2), TypeTreeDefaultEnabled (>=5), ScriptTypeIndex (>=2018),
//	RefTypes (>=2019), UnityFS (>=5.3), Lz4Compression (>=5.3),
//	Brotli (>=2020), Alignment8 (>=2022).
func (v Version) Supports(f Feature) bool {
	switch f {
	case FeatureBigIDs:
		return v.AtLeast(2018, 2)
	case FeatureTypeTreeDefaultEnable:
		return v.Major >= 5
	case FeatureScriptTypeIndex:
		return v.Major >= 2018
	case FeatureRefTypes:
		return v.Major >= 2019
	case FeatureUnityFS:
		return v.AtLeast(5, 3)
	case FeatureLZ4Compression:
		return v.AtLeast(5, 3)
	case FeatureBrotli:
		return v.Major >= 2020
	case FeatureAlignment8:
		return v.Major >= 2022
	default:
		return false
	}
}

// String renders the version back to Unity's textual form.
func (v Version) String() string {
	if v.Type == 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
	}
	return fmt.Sprintf("%d.%d.%d%c%d", v.Major, v.Minor, v.Build, v.Type, v.Number)
}
