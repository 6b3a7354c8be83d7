// Package version orders the documentation version manifest used by the
// docs site version switcher. Entries are semantic-version tags (v0.6.2),
// development channels (v0.7-dev), or free-form named channels; Sort puts
// them into the display order: newest version first, named channels last.
package version

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

// Info is one entry of the version manifest (mike-style versions.json).
type Info struct {
	// Version is the deployed version label (directory name on the site).
	Version string `json:"version"`

	// Title is the label shown in the switcher, often with extra detail
	// like the full patch version or a short commit hash.
	Title string `json:"title"`

	// Aliases are alternate names pointing at this version (e.g. "latest").
	Aliases []string `json:"aliases"`
}

// Canonical returns the comparable semantic version for a label, or "" when
// the label is not a version. A missing leading "v" is tolerated and short
// forms like "0.7" or "v0.7-dev" are completed to full semver.
func Canonical(label string) string {
	v := strings.TrimSpace(label)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// IsVersion reports whether the label participates in semantic ordering.
func IsVersion(label string) bool {
	return Canonical(label) != ""
}

// Less is the strict display order:
//
//  1. semantic versions before named channels;
//  2. semantic versions newest first; a v0.7-dev channel is ahead of every
//     v0.6.x release, which plain descending semver order already gives;
//  3. equal versions break the tie on the raw label, descending;
//  4. named channels sort among themselves descending lexicographically.
func Less(a, b Info) bool {
	ca, cb := Canonical(a.Version), Canonical(b.Version)
	switch {
	case ca != "" && cb == "":
		return true
	case ca == "" && cb != "":
		return false
	case ca == "" && cb == "":
		return a.Version > b.Version
	}
	if cmp := semver.Compare(ca, cb); cmp != 0 {
		return cmp > 0
	}
	return a.Version > b.Version
}

// Sort returns the entries in display order. The input is not modified and
// the result is deterministic for any input, duplicates included.
func Sort(infos []Info) []Info {
	sorted := make([]Info, len(infos))
	copy(sorted, infos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	// The manifest schema always carries an aliases array, never null.
	for i := range sorted {
		if sorted[i].Aliases == nil {
			sorted[i].Aliases = []string{}
		}
	}
	return sorted
}
