// Package selector parses and matches the hook-selection arguments accepted
// by `prek run`: a bare hook ID, `:hook-id`, a project path prefix
// (`project/`, `.`), or the combined `project:hook-id` form. Selectors are
// collected into includes/skips and checked against each hook the run
// pipeline considers.
package selector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes the three selector grammars.
type Kind int

const (
	// KindHookID matches a hook by ID or alias regardless of project.
	KindHookID Kind = iota
	// KindProjectPrefix matches every hook whose project path has this prefix.
	KindProjectPrefix
	// KindProjectHook matches a specific hook ID within a specific project.
	KindProjectHook
)

// Selector is one parsed include/skip entry.
type Selector struct {
	Kind        Kind
	ProjectPath string // relative to the workspace root, "" for the root project
	HookID      string
	Original    string
}

func (s Selector) String() string {
	switch s.Kind {
	case KindHookID:
		return ":" + s.HookID
	case KindProjectHook:
		if s.ProjectPath == "" {
			return ".:" + s.HookID
		}
		return s.ProjectPath + ":" + s.HookID
	case KindProjectPrefix:
		if s.ProjectPath == "" {
			return "./"
		}
		return s.ProjectPath + "/"
	default:
		return s.Original
	}
}

// HookRef is the minimal view of a hook a Selector needs to decide a match;
// callers adapt their own hook/project types to it.
type HookRef struct {
	ID             string
	Alias          string
	ProjectRelPath string
}

// Matches reports whether h is selected by s.
func (s Selector) Matches(h HookRef) bool {
	switch s.Kind {
	case KindHookID:
		return h.ID == s.HookID || (s.HookID != "" && h.Alias == s.HookID)
	case KindProjectPrefix:
		return h.ProjectRelPath == s.ProjectPath || strings.HasPrefix(h.ProjectRelPath, s.ProjectPath+"/")
	case KindProjectHook:
		matchesID := h.ID == s.HookID || (s.HookID != "" && h.Alias == s.HookID)
		return matchesID && h.ProjectRelPath == s.ProjectPath
	default:
		return false
	}
}

// Parse parses a single selector string relative to workspaceRoot.
func Parse(input, workspaceRoot string) (Selector, error) {
	if strings.Count(input, ":") > 1 {
		return Selector{}, fmt.Errorf("invalid selector %q: only one ':' is allowed", input)
	}

	if hookID, ok := strings.CutPrefix(input, ":"); ok {
		if hookID == "" {
			return Selector{}, fmt.Errorf("invalid selector %q: hook ID part is empty", input)
		}
		return Selector{Kind: KindHookID, HookID: hookID, Original: input}, nil
	}

	if projectPart, hookID, ok := strings.Cut(input, ":"); ok {
		if projectPart == "" {
			return Selector{}, fmt.Errorf("invalid selector %q: project path part is empty", input)
		}
		if hookID == "" {
			return Selector{}, fmt.Errorf("invalid selector %q: hook ID part is empty", input)
		}
		projectPath, err := normalizePath(projectPart, workspaceRoot)
		if err != nil {
			return Selector{}, err
		}
		return Selector{Kind: KindProjectHook, ProjectPath: projectPath, HookID: hookID, Original: input}, nil
	}

	if input == "." || strings.Contains(input, "/") {
		projectPath, err := normalizePath(input, workspaceRoot)
		if err != nil {
			return Selector{}, err
		}
		return Selector{Kind: KindProjectPrefix, ProjectPath: projectPath, Original: input}, nil
	}

	if input == "" {
		return Selector{}, fmt.Errorf("invalid selector: cannot be empty")
	}

	// Ambiguous case: a bare word with no ':' or '/' is a hook ID, matching
	// the pre-commit CLI's historical `hook-id [hook-id ...]` argument form.
	return Selector{Kind: KindHookID, HookID: input, Original: input}, nil
}

// normalizePath resolves path to a slash-separated path relative to
// workspaceRoot, erroring if path doesn't exist or escapes the workspace.
func normalizePath(path, workspaceRoot string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspaceRoot, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid project path %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("invalid project path %q: %w", path, err)
	}

	root, err := filepath.EvalSymlinks(workspaceRoot)
	if err != nil {
		return "", fmt.Errorf("invalid workspace root %q: %w", workspaceRoot, err)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid project path %q: outside the workspace root", path)
	}
	if rel == "." {
		rel = ""
	}
	return filepath.ToSlash(rel), nil
}

// Selectors is the full set of include/skip selectors for a run.
type Selectors struct {
	Includes []Selector
	Skips    []Selector
}

// Load parses includes and skips (CLI args) plus any skip selectors named by
// the PREK_SKIP/SKIP environment variables (CLI --skip takes precedence).
func Load(includes, skips []string, workspaceRoot string) (*Selectors, error) {
	parsedIncludes := make([]Selector, 0, len(includes))
	for _, in := range includes {
		s, err := Parse(in, workspaceRoot)
		if err != nil {
			return nil, err
		}
		parsedIncludes = append(parsedIncludes, s)
	}

	skipStrs := skips
	if len(skipStrs) == 0 {
		if v, ok := os.LookupEnv("PREK_SKIP"); ok {
			skipStrs = splitCommaSeparated(v)
		} else if v, ok := os.LookupEnv("SKIP"); ok {
			skipStrs = splitCommaSeparated(v)
		}
	}

	parsedSkips := make([]Selector, 0, len(skipStrs))
	for _, sk := range skipStrs {
		s, err := Parse(sk, workspaceRoot)
		if err != nil {
			return nil, err
		}
		parsedSkips = append(parsedSkips, s)
	}

	return &Selectors{Includes: parsedIncludes, Skips: parsedSkips}, nil
}

func splitCommaSeparated(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// MatchesHook reports whether hook should run: not skipped, and either
// includes is empty (meaning "everything") or it matches an include.
func (s *Selectors) MatchesHook(h HookRef) bool {
	for _, skip := range s.Skips {
		if skip.Matches(h) {
			return false
		}
	}
	if len(s.Includes) == 0 {
		return true
	}
	for _, include := range s.Includes {
		if include.Matches(h) {
			return true
		}
	}
	return false
}

// MatchesProject reports whether any hook under projectRelPath could be
// selected, used to skip whole projects before resolving their hooks.
func (s *Selectors) MatchesProject(projectRelPath string) bool {
	for _, skip := range s.Skips {
		if skip.Kind == KindProjectPrefix && withinPrefix(projectRelPath, skip.ProjectPath) {
			return false
		}
	}

	hasProjectPrefix := false
	for _, include := range s.Includes {
		if include.Kind == KindProjectPrefix {
			hasProjectPrefix = true
			if withinPrefix(projectRelPath, include.ProjectPath) {
				return true
			}
		}
	}
	return !hasProjectPrefix
}

func withinPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
