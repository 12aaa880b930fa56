package config

import "path/filepath"

// Project files consulted for configuration, relative to the repository dir.
const (
	PackageJSON  = "package.json"
	ComposerJSON = "composer.json"
	RCFileName   = ".changelogrc"
	DotEnvName   = ".env"
)

// ManifestCandidates returns the manifest paths in lookup order.
// The first one that exists is used.
func ManifestCandidates(dir string) []string {
	return []string{
		filepath.Join(dir, PackageJSON),
		filepath.Join(dir, ComposerJSON),
	}
}

// RCFilePath returns the path of the rc-config file in dir.
func RCFilePath(dir string) string {
	return filepath.Join(dir, RCFileName)
}

// DotEnvPath returns the path of the dotenv file in dir.
func DotEnvPath(dir string) string {
	return filepath.Join(dir, DotEnvName)
}
