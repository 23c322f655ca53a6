// Package filefilter decides which files a hook runs against: include/exclude
// regex patterns plus types/types_or/exclude_types tag filters. Tag lookups
// are delegated to pkg/identify; a plain extension check is used when the
// file isn't present on disk (e.g. a path from a diff against a historical
// ref that was since deleted).
package filefilter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-prek/prek/pkg/config"
	"github.com/go-prek/prek/pkg/identify"
)

// Filter applies a hook's files/exclude/types filters to a candidate file list.
type Filter struct{}

// New creates a Filter.
func New() *Filter {
	return &Filter{}
}

// FilesForHook returns the subset of candidateFiles that match hook's filters.
func (f *Filter) FilesForHook(hook config.Hook, candidateFiles []string) []string {
	var matched []string
	for _, file := range candidateFiles {
		if f.Matches(file, hook) {
			matched = append(matched, file)
		}
	}
	return matched
}

// Matches reports whether file passes hook's files/exclude/types filters.
func (f *Filter) Matches(file string, hook config.Hook) bool {
	if hook.Files != "" && !matchesPattern(file, hook.Files) {
		return false
	}
	if hook.ExcludeRegex != "" && matchesPattern(file, hook.ExcludeRegex) {
		return false
	}
	if len(hook.Types) > 0 || len(hook.ExcludeTypes) > 0 || len(hook.TypesOr) > 0 {
		return f.matchesTypeFilters(file, hook)
	}
	return true
}

func matchesPattern(file, pattern string) bool {
	if pattern == "" {
		return true
	}
	if matched, err := regexp.MatchString(pattern, file); err == nil && matched {
		return true
	}
	basename := filepath.Base(file)
	matched, err := regexp.MatchString(pattern, basename)
	return err == nil && matched
}

func (f *Filter) matchesTypeFilters(file string, hook config.Hook) bool {
	tags := f.tagsFor(file)

	if len(hook.Types) > 0 && !identify.MatchesAll(tags, hook.Types) {
		return false
	}
	if len(hook.TypesOr) > 0 && !identify.MatchesAny(tags, hook.TypesOr) {
		return false
	}
	if len(hook.ExcludeTypes) > 0 && identify.MatchesAny(tags, hook.ExcludeTypes) {
		return false
	}
	return true
}

// tagsFor returns the tag set for file, falling back to an extension-only
// guess when the file can't be stat'd (it may not exist at HEAD in the
// working tree, e.g. when filtering a ref-range diff).
func (f *Filter) tagsFor(file string) map[string]bool {
	if tags, err := identify.Tags(file); err == nil {
		return tags
	}

	tags := map[string]bool{"file": true, "text": true}
	ext := strings.ToLower(filepath.Ext(file))
	for tag, exts := range identify.ExtensionTags {
		for _, e := range exts {
			if e == ext {
				tags[tag] = true
			}
		}
	}
	return tags
}
