package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment variables that set options,
// e.g. GITCHANGELOG_LATESTONLY=true.
const EnvPrefix = "GITCHANGELOG_"

// Defaults is the built-in layer. dir seeds the repository directory.
func Defaults(dir string) Source {
	return Source{
		Name: "default",
		Load: func(k *koanf.Koanf) error {
			for key, value := range GetDefaults() {
				k.Set(key, value)
			}
			if dir != "" {
				k.Set("dir", dir)
			}
			return nil
		},
	}
}

// Manifest reads the first project manifest found in dir (package.json,
// then composer.json). Its "version" becomes the declared version, its
// "homepage" the default commit link base, and its "changelog" object is
// merged as options.
func Manifest(dir string) Source {
	return Source{
		Name: "manifest",
		Load: func(k *koanf.Koanf) error {
			path := firstExisting(ManifestCandidates(dir))
			if path == "" {
				return nil
			}

			m := koanf.New(".")
			if err := m.Load(file.Provider(path), json.Parser()); err != nil {
				return fmt.Errorf("failed to load manifest %s: %w", path, err)
			}

			if v := m.String("version"); v != "" {
				k.Set("version", v)
			}
			if h := m.String("homepage"); h != "" {
				k.Set("link", h)
			}
			if m.Exists("changelog") {
				if err := k.Merge(m.Cut("changelog")); err != nil {
					return fmt.Errorf("merging changelog section of %s: %w", path, err)
				}
			}
			return nil
		},
	}
}

// RCFile reads .changelogrc in dir. The file may be JSON or YAML; its YAML
// syntax is checked first so errors carry line and column.
func RCFile(dir string) Source {
	return Source{
		Name: "rc",
		Load: func(k *koanf.Koanf) error {
			path := RCFilePath(dir)
			if !fileExists(path) {
				return nil
			}
			if err := ValidateYAMLSyntax(path); err != nil {
				return err
			}
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			return nil
		},
	}
}

// DotEnv reads GITCHANGELOG_* assignments from a .env file in dir without
// touching the process environment.
func DotEnv(dir string) Source {
	return Source{
		Name: "dotenv",
		Load: func(k *koanf.Koanf) error {
			path := DotEnvPath(dir)
			if !fileExists(path) {
				return nil
			}
			vars, err := godotenv.Read(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			for name, value := range vars {
				if strings.HasPrefix(name, EnvPrefix) {
					k.Set(envTransform(name), value)
				}
			}
			return nil
		},
	}
}

// Environment reads GITCHANGELOG_* variables from the process environment.
func Environment() Source {
	return Source{
		Name: "env",
		Load: func(k *koanf.Koanf) error {
			return k.Load(env.Provider(EnvPrefix, ".", envTransform), nil)
		},
	}
}

// Values is a layer of literal key/value pairs, used for command-line flags.
func Values(name string, values map[string]any) Source {
	return Source{
		Name: name,
		Load: func(k *koanf.Koanf) error {
			for key, value := range values {
				k.Set(key, value)
			}
			return nil
		},
	}
}

// envTransform converts environment variable names to config keys.
// Example: GITCHANGELOG_LATESTONLY -> latestonly
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
