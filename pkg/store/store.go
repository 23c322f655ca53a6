// Package store implements the content-addressed, lock-protected on-disk
// cache that holds cloned hook repositories, installed language environments,
// downloaded toolchains, and the set of configs prek has ever been run
// against. It is the single owner of every piece of persistent state the
// core creates; every write goes through the process-level lock at
// <root>/.lock.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/go-prek/prek/pkg/config"
)

// Bucket names under tools/ and cache/.
const (
	BucketUV     = "uv"
	BucketPython = "python"
	BucketNode   = "node"
	BucketGo     = "go"
	BucketRuby   = "ruby"
	BucketRustup = "rustup"
	BucketDeno   = "deno"
	BucketLua    = "lua"
	BucketCargo  = "cargo"
	BucketNpm    = "npm"
)

const (
	repoSentinelName = ".prek-repo.json"
	hookSentinelName = ".prek-hook.json"
	sentinelVersion  = 1
)

// Store is the on-disk cache rooted at $PREK_HOME. All mutating operations
// must be called while holding the lock returned by Lock.
type Store struct {
	root string
	lock *flock.Flock
}

// Open creates the store directory tree (if missing) rooted at root and
// returns a handle to it. Idempotent.
func Open(root string) (*Store, error) {
	s := &Store{root: root}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultRoot resolves $PREK_HOME, falling back to $XDG_DATA_HOME/prek and
// then ~/.local/share/prek.
func DefaultRoot() (string, error) {
	if home := os.Getenv("PREK_HOME"); home != "" {
		return home, nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "prek"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving default store root: %w", err)
	}
	return filepath.Join(home, ".local", "share", "prek"), nil
}

// init creates the directory tree if missing and writes a README marker on
// first creation. Idempotent.
func (s *Store) init() error {
	readme := filepath.Join(s.root, "README")
	firstCreate := false
	if _, err := os.Stat(s.root); os.IsNotExist(err) {
		firstCreate = true
	}

	for _, dir := range []string{
		s.root,
		filepath.Join(s.root, "repos"),
		filepath.Join(s.root, "hooks"),
		filepath.Join(s.root, "tools"),
		filepath.Join(s.root, "cache"),
		filepath.Join(s.root, "scratch"),
		filepath.Join(s.root, "patches"),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating store directory %s: %w", dir, err)
		}
	}

	if firstCreate {
		msg := "This directory is maintained by prek.\nSee https://github.com/go-prek/prek\n"
		if err := os.WriteFile(readme, []byte(msg), 0o644); err != nil { //nolint:gosec // marker file, no sensitive content
			return fmt.Errorf("writing store README: %w", err)
		}
	}

	s.lock = flock.New(filepath.Join(s.root, ".lock"))
	return nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// GetCacheDir is kept for compatibility with callers that historically
// treated the store root as a flat cache directory (pre-commit's on-disk
// layout); it returns the same root.
func (s *Store) GetCacheDir() string { return s.root }

// Lock blocks until the process-level advisory lock on <root>/.lock is
// acquired. Reentrant within the same *Store value via a single held handle.
func (s *Store) Lock() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquiring store lock: %w", err)
	}
	return nil
}

// Unlock releases the lock acquired by Lock.
func (s *Store) Unlock() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("releasing store lock: %w", err)
	}
	return nil
}

// WithLock runs fn while holding the store lock, always releasing it
// afterward regardless of fn's outcome.
func (s *Store) WithLock(fn func() error) error {
	if err := s.Lock(); err != nil {
		return err
	}
	defer func() { _ = s.Unlock() }()
	return fn()
}

// RepoSlug computes the deterministic, collision-resistant directory name
// for a cloned repo: sha256-hex(url + "@" + rev)[:16]. Additional
// dependencies (when the repo is installed as a dependency alongside extra
// packages) are folded into the hash so distinct dependency sets get
// distinct clones.
func RepoSlug(url, rev string, additionalDeps []string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte("@"))
	h.Write([]byte(rev))
	if len(additionalDeps) > 0 {
		h.Write([]byte(":"))
		h.Write([]byte(strings.Join(additionalDeps, ",")))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// RepoPath returns repos/<slug>/ for the given remote repo.
func (s *Store) RepoPath(repo config.Repo) string {
	return s.RepoPathWithDeps(repo, nil)
}

// RepoPathWithDeps returns repos/<slug>/ considering additional dependencies
// installed alongside the repo.
func (s *Store) RepoPathWithDeps(repo config.Repo, additionalDeps []string) string {
	slug := RepoSlug(repo.Repo, repo.Rev, additionalDeps)
	return filepath.Join(s.root, "repos", slug)
}

// repoSentinel is the JSON payload of repos/<slug>/.prek-repo.json.
type repoSentinel struct {
	Repo    string `json:"repo"`
	Rev     string `json:"rev"`
	Version int    `json:"version"`
}

// RepoIsCloned reports whether repoPath holds a clone matching repo,
// verified via its sentinel file.
func (s *Store) RepoIsCloned(repoPath string, repo config.Repo) bool {
	data, err := os.ReadFile(filepath.Join(repoPath, repoSentinelName)) //nolint:gosec // path built from store-owned slug
	if err != nil {
		return false
	}
	var got repoSentinel
	if err := json.Unmarshal(data, &got); err != nil {
		return false
	}
	return got.Version == sentinelVersion && got.Repo == repo.Repo && got.Rev == repo.Rev
}

// WriteRepoSentinel atomically writes repos/<slug>/.prek-repo.json, marking
// the clone as committed.
func (s *Store) WriteRepoSentinel(repoPath string, repo config.Repo) error {
	return atomicWriteJSON(filepath.Join(repoPath, repoSentinelName), repoSentinel{
		Repo:    repo.Repo,
		Rev:     repo.Rev,
		Version: sentinelVersion,
	})
}

// HooksDir returns the hooks/ directory root.
func (s *Store) HooksDir() string { return filepath.Join(s.root, "hooks") }

// HookEnvPath returns hooks/<envkey-hash>/ for a given EnvKey fingerprint.
func (s *Store) HookEnvPath(envKeyHash string) string {
	return filepath.Join(s.HooksDir(), envKeyHash)
}

// EnvKey fingerprints the environment a hook needs. Two hooks that share a
// Language, LanguageVersion, AdditionalDeps, and RemoteDep are free to share
// one installed environment; anything else must land in a distinct one, so
// that e.g. two hooks pinned to the same language+version but different
// additional_dependencies never collide on a single hooks/<hash> directory.
type EnvKey struct {
	Language        string
	LanguageVersion string
	AdditionalDeps  []string
	RemoteDep       string
}

// Hash returns a short, stable identifier for k suitable as a hooks/<hash>
// directory name. AdditionalDeps is sorted before hashing so reordering a
// hook's additional_dependencies list in the config never changes the key.
func (k EnvKey) Hash() string {
	deps := append([]string(nil), k.AdditionalDeps...)
	sort.Strings(deps)

	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s",
		strings.ToLower(k.Language), k.LanguageVersion, strings.Join(deps, "\x00"), k.RemoteDep)
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// HookScratchPath returns hooks/<envkey-hash>-scratch/, the staging area an
// install materializes into before the atomic rename to HookEnvPath.
func (s *Store) HookScratchPath(envKeyHash string) string {
	return filepath.Join(s.HooksDir(), envKeyHash+"-scratch")
}

// InstallInfo is the persisted record of one materialized environment.
type InstallInfo struct {
	CreatedAt       time.Time         `json:"created_at"`
	Extras          map[string]string `json:"extras,omitempty"`
	Language        string            `json:"language"`
	LanguageVersion string            `json:"language_version"`
	ToolchainPath   string            `json:"toolchain_path"`
	EnvPath         string            `json:"env_path"`
	Dependencies    []string          `json:"dependencies,omitempty"`
	Version         int               `json:"version"`
}

// WriteHookSentinel atomically writes envPath/.prek-hook.json; the presence
// of this file is the commit point for an installed environment.
func (s *Store) WriteHookSentinel(envPath string, info InstallInfo) error {
	info.Version = sentinelVersion
	if info.CreatedAt.IsZero() {
		info.CreatedAt = timeNow()
	}
	return atomicWriteJSON(filepath.Join(envPath, hookSentinelName), info)
}

// ReadHookSentinel reads and validates envPath/.prek-hook.json. Returns
// ok=false if the sentinel is absent or unreadable (a partial/garbage
// install must be treated as invisible).
func (s *Store) ReadHookSentinel(envPath string) (info InstallInfo, ok bool) {
	data, err := os.ReadFile(filepath.Join(envPath, hookSentinelName)) //nolint:gosec // path built from store-owned env dir
	if err != nil {
		return InstallInfo{}, false
	}
	if err := json.Unmarshal(data, &info); err != nil || info.Version != sentinelVersion {
		return InstallInfo{}, false
	}
	return info, true
}

// InstalledHooks scans hooks/*/ and yields the InstallInfo of every subdir
// with a valid sentinel. Subdirs without one are ignored (candidates for GC).
func (s *Store) InstalledHooks() ([]InstallInfo, error) {
	entries, err := os.ReadDir(s.HooksDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning hooks dir: %w", err)
	}

	var infos []InstallInfo
	for _, e := range entries {
		if !e.IsDir() || strings.HasSuffix(e.Name(), "-scratch") {
			continue
		}
		envPath := filepath.Join(s.HooksDir(), e.Name())
		if info, ok := s.ReadHookSentinel(envPath); ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// ToolsPath returns tools/<bucket>/, created lazily.
func (s *Store) ToolsPath(bucket string) (string, error) {
	p := filepath.Join(s.root, "tools", bucket)
	if err := os.MkdirAll(p, 0o750); err != nil {
		return "", fmt.Errorf("creating tools bucket %s: %w", bucket, err)
	}
	return p, nil
}

// CachePath returns cache/<bucket>/, created lazily.
func (s *Store) CachePath(bucket string) (string, error) {
	p := filepath.Join(s.root, "cache", bucket)
	if err := os.MkdirAll(p, 0o750); err != nil {
		return "", fmt.Errorf("creating cache bucket %s: %w", bucket, err)
	}
	return p, nil
}

// ScratchPath returns a fresh, unique tempdir under scratch/. The caller
// owns cleanup.
func (s *Store) ScratchPath(prefix string) (string, error) {
	dir := filepath.Join(s.root, "scratch")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating scratch dir: %w", err)
	}
	return os.MkdirTemp(dir, prefix+"-")
}

// PatchPath returns patches/<ts>-<rand>.patch for a worktree stash. patches/
// is intentionally never garbage collected (§9 open question).
func (s *Store) PatchPath(ts time.Time, rand string) string {
	name := fmt.Sprintf("%d-%s.patch", ts.UnixNano(), rand)
	return filepath.Join(s.root, "patches", name)
}

func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling sentinel: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // sentinel content is not sensitive
		return fmt.Errorf("writing sentinel temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming sentinel into place: %w", err)
	}
	return nil
}

// timeNow exists so tests can fake "now" via a package-level override if
// ever needed; kept as a thin indirection rather than calling time.Now()
// directly everywhere.
var timeNow = time.Now
