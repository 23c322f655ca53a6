// Package repository provides functionality for managing pre-commit hook repositories
// and their associated environments.
package repository

import (
	"context"
	"fmt"

	"github.com/go-prek/prek/pkg/config"
	"github.com/go-prek/prek/pkg/environment"
	"github.com/go-prek/prek/pkg/store"
)

// Manager handles repository management and hook environment setup
type Manager struct {
	repoStore      *store.Store
	repositoryOps  *Operations
	environmentMgr *environment.Manager
	hookMgr        *HookManager
	cacheDir       string
}

// NewManager creates a new repository manager backed by the default store
// root ($PREK_HOME, falling back to $XDG_DATA_HOME/prek).
func NewManager() (*Manager, error) {
	cacheDir, err := store.DefaultRoot()
	if err != nil {
		return nil, err
	}

	repoStore, err := store.Open(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Initialize other components
	repositoryOps := NewRepositoryOperations(repoStore)
	environmentMgr := environment.NewManager(cacheDir)
	hookMgr := NewHookManager()

	return &Manager{
		repoStore:      repoStore,
		repositoryOps:  repositoryOps,
		environmentMgr: environmentMgr,
		hookMgr:        hookMgr,
		cacheDir:       cacheDir,
	}, nil
}

// Close releases any resources held by the store. The file-based store has
// no database handle to close, unlike the sqlite-backed cache this manager
// used to wrap, but Close is kept so callers don't need a conditional path.
func (m *Manager) Close() error {
	return m.repoStore.Close()
}

// GetCacheDir returns the store root directory path.
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}

// GetRepoPath returns the deterministic path where a repository is cloned.
func (m *Manager) GetRepoPath(repo config.Repo) string {
	return m.repoStore.GetRepoPath(repo)
}

// GetRepoPathWithDeps returns the deterministic clone path considering additional dependencies
func (m *Manager) GetRepoPathWithDeps(repo config.Repo, additionalDeps []string) string {
	return m.repoStore.GetRepoPathWithDeps(repo, additionalDeps)
}

// CloneOrUpdateRepo ensures a repository is cloned and at the correct revision
func (m *Manager) CloneOrUpdateRepo(ctx context.Context, repo config.Repo) (string, error) {
	return m.repositoryOps.CloneOrUpdateRepo(ctx, repo)
}

// CloneOrUpdateRepoWithDeps ensures a repository is cloned and at the correct revision, considering additional dependencies
func (m *Manager) CloneOrUpdateRepoWithDeps(
	ctx context.Context,
	repo config.Repo,
	additionalDeps []string,
) (string, error) {
	return m.repositoryOps.CloneOrUpdateRepoWithDeps(ctx, repo, additionalDeps)
}

// CleanCache removes all cached repositories
func (m *Manager) CleanCache() error {
	return m.repoStore.CleanCache()
}

// IsMetaRepo checks if a repository is a meta/built-in repository
func (m *Manager) IsMetaRepo(repo config.Repo) bool {
	return m.hookMgr.IsMetaRepo(repo)
}

// IsLocalRepo checks if a repository is local
func (m *Manager) IsLocalRepo(repo config.Repo) bool {
	return m.hookMgr.IsLocalRepo(repo)
}

// GetMetaHook returns a built-in meta hook definition
func (m *Manager) GetMetaHook(hookID string) (config.Hook, bool) {
	return m.hookMgr.GetMetaHook(hookID)
}

// GetRepositoryHook loads a hook definition from a repository's .pre-commit-hooks.yaml
func (m *Manager) GetRepositoryHook(repoPath, hookID string) (config.Hook, bool) {
	return m.hookMgr.GetRepositoryHook(repoPath, hookID)
}

// SetupHookEnvironment sets up the environment for running a hook
func (m *Manager) SetupHookEnvironment(
	hook config.Hook,
	repo config.Repo,
	repoPath string,
) (map[string]string, error) {
	return m.environmentMgr.SetupHookEnvironment(hook, repo, repoPath)
}

// GetHookExecutablePath returns the path to a hook's executable within a repository
func (m *Manager) GetHookExecutablePath(repoPath string, hook config.Hook) (string, error) {
	return m.hookMgr.GetHookExecutablePath(repoPath, hook)
}

// CheckEnvironmentHealthWithRepo checks if a language environment is healthy within a repository context
func (m *Manager) CheckEnvironmentHealthWithRepo(language, version, repoPath string) error {
	return m.environmentMgr.CheckEnvironmentHealthWithRepo(language, version, repoPath)
}

// RebuildEnvironmentWithRepo rebuilds a language environment within a repository context
func (m *Manager) RebuildEnvironmentWithRepo(language, version, repoPath string) error {
	return m.environmentMgr.RebuildEnvironmentWithRepo(language, version, repoPath)
}

// RebuildEnvironmentWithRepoInfo rebuilds a language environment within a repository context with repo URL
func (m *Manager) RebuildEnvironmentWithRepoInfo(
	language, version, repoPath, repoURL string,
) error {
	return m.environmentMgr.RebuildEnvironmentWithRepoInfo(language, version, repoPath, repoURL)
}

// MarkConfigUsed adds a config file to the store's tracked-configs list (nothing is recorded if the file does not exist)
func (m *Manager) MarkConfigUsed(configPath string) error {
	return m.repoStore.MarkConfigUsed(configPath)
}

// UpdateRepoEntryWithDeps updates the database entry for a repository with dependencies
func (m *Manager) UpdateRepoEntryWithDeps(
	repo config.Repo,
	additionalDeps []string,
	path string,
) error {
	return m.repoStore.UpdateRepoEntryWithDeps(repo, additionalDeps, path)
}

// PreInitializeHookEnvironments performs the pre-initialization phase for all hook environments
func (m *Manager) PreInitializeHookEnvironments(
	ctx context.Context,
	hooks []config.HookEnvItem,
) error {
	return m.environmentMgr.PreInitializeHookEnvironments(ctx, hooks, m.repositoryOps)
}

// SetupEnvironmentWithRepositoryInit sets up an environment assuming the repository is already initialized
func (m *Manager) SetupEnvironmentWithRepositoryInit(
	repo config.Repo, language, version string, additionalDeps []string,
) (string, error) {
	return m.environmentMgr.SetupEnvironmentWithRepositoryInit(
		repo,
		language,
		version,
		additionalDeps,
	)
}

// GetCommonRepositoryManager returns a repository manager interface that languages can use
func (m *Manager) GetCommonRepositoryManager(
	ctx context.Context,
) any {
	return m.environmentMgr.GetCommonRepositoryManager(ctx, m.repositoryOps)
}
