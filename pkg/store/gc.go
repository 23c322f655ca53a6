package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-prek/prek/pkg/config"
)

// GC removes every repo/ and hooks/ entry whose EnvKey/slug is not
// referenced by any tracked config's currently-resolved hooks. referenced
// is the set of repo slugs and hook envkey-hashes still in use, as computed
// by the caller (the hook resolver) from every tracked config.
//
// patches/ is intentionally never collected here (§9 open question: no safe
// GC strategy exists yet for in-flight stash patches).
func (s *Store) GC(referencedRepoSlugs, referencedEnvKeyHashes map[string]bool) error {
	if err := s.gcDir(filepath.Join(s.root, "repos"), referencedRepoSlugs); err != nil {
		return err
	}
	return s.gcDir(s.HooksDir(), referencedEnvKeyHashes)
}

func (s *Store) gcDir(dir string, keep map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), "-scratch")
		if keep[name] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for the file-based store; kept so callers that used to
// hold a database handle (the teacher's sqlite-backed cache.Manager) don't
// need a conditional Close path.
func (s *Store) Close() error { return nil }

// CleanCache removes every repos/ entry unconditionally, matching the
// behavior of `prek cache clean` / legacy `pre-commit clean`.
func (s *Store) CleanCache() error {
	return s.WithLock(func() error {
		return os.RemoveAll(filepath.Join(s.root, "repos"))
	})
}

// MarkConfigUsed is an alias for AddTrackedConfig, kept for callers migrated
// from the teacher's database-backed "mark config used" terminology.
func (s *Store) MarkConfigUsed(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}
	return s.AddTrackedConfig(configPath)
}

// GetRepoPath is a compatibility alias over RepoPath.
func (s *Store) GetRepoPath(repo config.Repo) string { return s.RepoPath(repo) }

// GetRepoPathWithDeps is a compatibility alias over RepoPathWithDeps.
func (s *Store) GetRepoPathWithDeps(repo config.Repo, deps []string) string {
	return s.RepoPathWithDeps(repo, deps)
}

// UpdateRepoEntry writes the repo sentinel once a clone at path completes.
// The path argument is accepted for interface compatibility with the
// teacher's database-backed signature but is otherwise unused: repo paths
// are deterministic (RepoPath), not database-assigned.
func (s *Store) UpdateRepoEntry(repo config.Repo, _ string) error {
	return s.WriteRepoSentinel(s.RepoPath(repo), repo)
}

// UpdateRepoEntryWithDeps is the additional-dependencies variant of
// UpdateRepoEntry.
func (s *Store) UpdateRepoEntryWithDeps(repo config.Repo, deps []string, _ string) error {
	return s.WriteRepoSentinel(s.RepoPathWithDeps(repo, deps), repo)
}
