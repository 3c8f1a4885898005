package config

import (
	"os"
	"runtime"
)

// Platform holds the host lookups the path helpers depend on. Tests build
// one by hand to simulate another operating system.
type Platform struct {
	// OS is a GOOS value such as "windows", "darwin" or "linux"
	OS      string
	Getenv  func(key string) string
	HomeDir func() (string, error)
}

// HostPlatform describes the machine the binary runs on
func HostPlatform() Platform {
	return Platform{
		OS:      runtime.GOOS,
		Getenv:  os.Getenv,
		HomeDir: os.UserHomeDir,
	}
}

// DefaultPlatform is used by ConfigDir, GlobalConfigPath and CatalogPath
var DefaultPlatform = HostPlatform()

func (p Platform) env(key string) string {
	if p.Getenv == nil {
		return ""
	}
	return p.Getenv(key)
}

// home returns the user's home directory, or "" when it cannot be determined
func (p Platform) home() string {
	if p.HomeDir == nil {
		return ""
	}
	dir, err := p.HomeDir()
	if err != nil {
		return ""
	}
	return dir
}
