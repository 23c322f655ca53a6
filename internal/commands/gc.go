package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/cli"

	"github.com/go-prek/prek/pkg/config"
	"github.com/go-prek/prek/pkg/store"
)

// GcCommand handles the garbage collection command functionality
type GcCommand struct{}

// GcOptions holds command-line options for the gc command
type GcOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"Verbose output showing what is being cleaned"`
	Help    bool `short:"h" long:"help"    description:"Show this help message"`
}

// Help returns the help text for the gc command
func (c *GcCommand) Help() string {
	var opts GcOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = OptionsUsage

	formatter := &HelpFormatter{
		Command:     "gc",
		Description: "Clean unused cached repositories.",
		Examples: []Example{
			{
				Command:     "prek gc",
				Description: "Remove repositories not referenced by any configs",
			},
			{Command: "prek gc --verbose", Description: "Show detailed output"},
		},
		Notes: []string{
			"This command removes cached repository clones that are no longer",
			"referenced by any tracked .pre-commit-config.yaml file.",
			"Hook environments under hooks/ are not removed by this command.",
			"patches/ is never garbage collected.",
		},
	}

	return formatter.FormatHelp(parser)
}

// Synopsis returns a short description of the gc command
func (c *GcCommand) Synopsis() string {
	return "Clean unused cached data"
}

// Run executes the gc command
func (c *GcCommand) Run(args []string) int {
	var opts GcOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = OptionsUsage

	_, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		fmt.Printf("Error parsing arguments: %v\n", err)
		return 1
	}

	cacheDir := getCacheDirectory()
	if opts.Verbose {
		fmt.Printf("Garbage collecting store: %s\n", cacheDir)
	}

	if _, statErr := os.Stat(cacheDir); os.IsNotExist(statErr) {
		if opts.Verbose {
			fmt.Printf("Store directory does not exist: %s\n", cacheDir)
		}
		fmt.Printf("0 repo(s) removed.\n")
		return 0
	}

	repoStore, err := store.Open(cacheDir)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		return 1
	}

	removedRepos, removedEnvs, err := c.gc(repoStore, opts.Verbose)
	if err != nil {
		fmt.Printf("Error during garbage collection: %v\n", err)
		return 1
	}

	fmt.Printf("%d repo(s) removed, %d hook environment(s) removed.\n", removedRepos, removedEnvs)
	return 0
}

// gc removes every repos/ entry that is not referenced by any
// still-existing tracked config, and drops tracked configs whose file is gone.
// hooks/ entries are left in place, so removedEnvs is always 0.
func (c *GcCommand) gc(repoStore *store.Store, verbose bool) (removedRepos, removedEnvs int, err error) {
	err = repoStore.WithLock(func() error {
		tracked, terr := repoStore.TrackedConfigs()
		if terr != nil {
			return terr
		}

		referencedSlugs := map[string]bool{}
		var liveConfigs, deadConfigs []string
		for _, path := range tracked {
			if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
				deadConfigs = append(deadConfigs, path)
				continue
			}
			liveConfigs = append(liveConfigs, path)

			cfg, loadErr := config.LoadConfig(path)
			if loadErr != nil {
				if verbose {
					fmt.Printf("Failed to load config %s: %v\n", path, loadErr)
				}
				continue
			}
			for _, repo := range cfg.Repos {
				if repo.Repo == "local" || repo.Repo == "meta" || repo.Repo == "self" {
					continue
				}
				slug := store.RepoSlug(repo.Repo, repo.Rev, nil)
				referencedSlugs[slug] = true
				if verbose {
					fmt.Printf("Repo in use: %s@%s (slug %s)\n", repo.Repo, repo.Rev, slug)
				}
			}
		}

		if len(deadConfigs) > 0 {
			if uerr := repoStore.UpdateTrackedConfigs(liveConfigs); uerr != nil {
				return uerr
			}
			if verbose {
				fmt.Printf("Dropped %d dead config reference(s)\n", len(deadConfigs))
			}
		}

		// Only repo clones are collected; hook environments are not
		// examined or removed here.
		removedRepos, err = c.removeUnreferenced(repoStore.Root()+"/repos", referencedSlugs, verbose)
		return err
	})
	return removedRepos, removedEnvs, err
}

func (c *GcCommand) removeUnreferenced(dir string, keep map[string]bool, verbose bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if !e.IsDir() || keep[e.Name()] {
			continue
		}
		path := dir + "/" + e.Name()
		if verbose {
			fmt.Printf("Removing unused repo clone: %s\n", path)
		}
		if rmErr := os.RemoveAll(path); rmErr != nil {
			if verbose {
				fmt.Printf("⚠️  Warning: failed to remove %s: %v\n", path, rmErr)
			}
			continue
		}
		removed++
	}
	return removed, nil
}

// GcCommandFactory creates a new gc command instance
func GcCommandFactory() (cli.Command, error) {
	return &GcCommand{}, nil
}
