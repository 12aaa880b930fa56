package config

// GetDefaults returns the built-in option values, the lowest layer.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"file":       "./CHANGELOG.md",
		"page":       "",
		"link":       "",
		"jira":       "",
		"verbose":    false,
		"latestonly": false,
		"output":     false,
		"json":       false,
		"dir":        ".",
		"shorthash":  false,
		"version":    "",
		"debug":      false,
	}
}
