package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Version information (set via -ldflags during build)
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns version with build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile reads the .version file next to the executable, if any
func LoadVersionFromFile() string {
	exePath, err := os.Executable()
	if err != nil {
		return Version
	}
	return loadVersionFile(filepath.Join(filepath.Dir(exePath), ".version"))
}

// loadVersionFile accepts either a bare version string or "key: value" lines
// for version, build and commit. Missing files leave the ldflags values in place.
func loadVersionFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return Version
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			Version = line
			continue
		}

		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "version":
			Version = value
		case "build":
			Build = value
		case "commit", "git_commit":
			GitCommit = value
		}
	}

	return Version
}
