// Package workspace discovers the set of pre-commit config files rooted at a
// git repository: the top-level config plus any nested
// `.pre-commit-config.yaml` under subdirectories, each treated as its own
// Project. Projects are ordered deepest-first so nested configs get the
// first opportunity to claim their files before the workspace root's.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-prek/prek/pkg/config"
)

// ErrNoConfig is returned when no .pre-commit-config.yaml can be found
// walking up from the starting directory to the git root.
var ErrNoConfig = errors.New("no .pre-commit-config.yaml found in the current directory or parent directories")

// Project is one discovered config file and its position in the workspace.
type Project struct {
	ConfigPath string // absolute path to the project's config file
	RelPath    string // slash-separated path relative to the workspace root, "" for the root project
	Depth      int    // directory depth of ConfigPath's parent below the workspace root
	Index      int    // position in depth-desc, then path-asc order
	Config     *config.Config
}

// Dir returns the project's directory (the parent of ConfigPath).
func (p Project) Dir() string { return filepath.Dir(p.ConfigPath) }

// String renders the project the way prek's CLI output and selectors do:
// "." for the workspace root, the relative path otherwise.
func (p Project) String() string {
	if p.RelPath == "" {
		return "."
	}
	return p.RelPath
}

// Workspace is a git repository root plus every project discovered under it,
// ordered deepest-first (ties broken by relative path) so a multi-project run
// processes the most specific configs first.
type Workspace struct {
	Root     string
	Projects []Project
}

// Discover finds the workspace containing startDir (or the explicit
// configPath, if non-empty) and every nested project under it.
//
// If configPath is set, the workspace is just that single project rooted at
// its own directory (single-config mode, e.g. `--config path/to.yaml`).
// Otherwise, it walks up from startDir to gitRoot looking for the nearest
// ancestor directory containing a config file, then walks back down
// collecting every nested config file into a Project.
func Discover(configPath, startDir, gitRoot string) (*Workspace, error) {
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path %s: %w", configPath, err)
		}
		proj, err := loadProject(abs, "", 0)
		if err != nil {
			return nil, err
		}
		return &Workspace{Root: filepath.Dir(abs), Projects: []Project{proj}}, nil
	}

	root, err := findWorkspaceRoot(startDir, gitRoot)
	if err != nil {
		return nil, err
	}

	projects, err := discoverProjects(root)
	if err != nil {
		return nil, err
	}

	sortProjectsDepthDesc(projects)
	for i := range projects {
		projects[i].Index = i
	}

	return &Workspace{Root: root, Projects: projects}, nil
}

// findWorkspaceRoot walks from startDir up to (and including) gitRoot,
// returning the nearest ancestor directory holding a config file.
func findWorkspaceRoot(startDir, gitRoot string) (string, error) {
	gitRoot = filepath.Clean(gitRoot)
	dir := filepath.Clean(startDir)

	for {
		if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
			return dir, nil
		}
		if dir == gitRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNoConfig
}

// discoverProjects walks root looking for every `.pre-commit-config.yaml`,
// skipping `.git` directories (never a project) and descending into hidden
// directories otherwise, mirroring the upstream workspace walker.
func discoverProjects(root string) ([]Project, error) {
	var projects []Project

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != config.ConfigFileName {
			return nil
		}

		dir := filepath.Dir(path)
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, err)
		}
		if rel == "." {
			rel = ""
		}
		depth := 0
		if rel != "" {
			depth = len(strings.Split(rel, string(filepath.Separator)))
		}

		proj, loadErr := loadProject(path, filepath.ToSlash(rel), depth)
		if loadErr != nil {
			return fmt.Errorf("loading project config %s: %w", path, loadErr)
		}
		projects = append(projects, proj)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrNoConfig
	}
	return projects, nil
}

func loadProject(configPath, relPath string, depth int) (Project, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return Project{}, err
	}
	return Project{ConfigPath: configPath, RelPath: relPath, Depth: depth, Config: cfg}, nil
}

// sortProjectsDepthDesc orders deepest project first; ties broken by
// relative path for a deterministic run order.
func sortProjectsDepthDesc(projects []Project) {
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Depth != projects[j].Depth {
			return projects[i].Depth > projects[j].Depth
		}
		return projects[i].RelPath < projects[j].RelPath
	})
}

// FilterFilesForProject returns the subset of files that live under
// project's directory, stripped of that directory's prefix so a hook's
// files/exclude patterns see repository-relative-to-project paths.
func FilterFilesForProject(files []string, relPath string) []string {
	if relPath == "" {
		return files
	}
	prefix := relPath + "/"
	var out []string
	for _, f := range files {
		if rest, ok := strings.CutPrefix(f, prefix); ok {
			out = append(out, rest)
		}
	}
	return out
}
