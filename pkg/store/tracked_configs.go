package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const trackedConfigsName = "tracked-configs.json"

// TrackedConfigs loads the newline-delimited JSON list of absolute config
// paths prek has ever been run against. Missing file reads as empty.
func (s *Store) TrackedConfigs() ([]string, error) {
	f, err := os.Open(filepath.Join(s.root, trackedConfigsName)) //nolint:gosec // fixed path under store root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading tracked configs: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on read path

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var p string
		if err := json.Unmarshal(line, &p); err != nil {
			continue
		}
		paths = append(paths, p)
	}
	return paths, scanner.Err()
}

// UpdateTrackedConfigs atomically replaces the tracked-configs file with the
// given set of absolute paths.
func (s *Store) UpdateTrackedConfigs(paths []string) error {
	path := filepath.Join(s.root, trackedConfigsName)
	tmp := path + ".tmp"

	f, err := os.Create(tmp) //nolint:gosec // fixed path under store root
	if err != nil {
		return fmt.Errorf("creating tracked configs temp file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, p := range paths {
		data, merr := json.Marshal(p)
		if merr != nil {
			_ = f.Close()
			return fmt.Errorf("marshaling tracked config path: %w", merr)
		}
		if _, werr := w.Write(append(data, '\n')); werr != nil {
			_ = f.Close()
			return fmt.Errorf("writing tracked config path: %w", werr)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing tracked configs: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing tracked configs temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming tracked configs into place: %w", err)
	}
	return nil
}

// AddTrackedConfig appends an absolute config path if it isn't already
// tracked.
func (s *Store) AddTrackedConfig(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving tracked config path: %w", err)
	}

	existing, err := s.TrackedConfigs()
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p == abs {
			return nil
		}
	}
	return s.UpdateTrackedConfigs(append(existing, abs))
}
