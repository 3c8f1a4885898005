package config

import (
	"path/filepath"
)

const appName = "labelpick"

// ConfigDir returns the per-user configuration directory
func ConfigDir() string {
	return ConfigDirFor(DefaultPlatform)
}

// ConfigDirFor resolves the configuration directory on platform. It returns
// "" when the home directory is needed but unknown.
func ConfigDirFor(platform Platform) string {
	var base []string
	switch platform.OS {
	case "windows":
		// %APPDATA%\labelpick, or ~\.labelpick without APPDATA
		if appData := platform.env("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
		base = []string{"." + appName}
	case "darwin":
		base = []string{"Library", "Application Support", appName}
	default:
		if xdg := platform.env("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		base = []string{".config", appName}
	}

	home := platform.home()
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, base...)...)
}

// inConfigDir joins name onto the config directory, keeping "" for unknown
func inConfigDir(platform Platform, name string) string {
	dir := ConfigDirFor(platform)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}

// GlobalConfigPath returns the path of the per-user config file
func GlobalConfigPath() string {
	return GlobalConfigPathFor(DefaultPlatform)
}

// GlobalConfigPathFor returns the per-user config file on platform
func GlobalConfigPathFor(platform Platform) string {
	return inConfigDir(platform, "config.yaml")
}

// ProjectConfigPath returns the project-level config file inside projectDir
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, "."+appName, "config.yaml")
}

// CatalogPath returns the default SQLite label catalog path
func CatalogPath() string {
	return CatalogPathFor(DefaultPlatform)
}

// CatalogPathFor returns the label catalog path on platform
func CatalogPathFor(platform Platform) string {
	return inConfigDir(platform, "labels.db")
}
