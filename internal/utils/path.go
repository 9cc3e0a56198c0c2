package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config directory and the default files in it.
const AppName = "phrasematch"

// PatternFileNames are the pattern files looked up when none is given.
var PatternFileNames = []string{"patterns.txt", "patterns.toml", "patterns.yaml", "patterns.yml"}

// PathResolver locates the config directory and pattern files relative to
// the running binary.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver resolves the executable location and the config directory.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     ConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// ConfigDir returns the platform config directory for phrasematch under
// homeDir, honoring XDG_CONFIG_HOME and APPDATA.
func ConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", AppName)
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// GetConfigPath returns where filename should live, falling back to other
// writable locations when the config directory is read-only.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if isWritableDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}
	fallbacks := []string{
		filepath.Join(pr.homeDir, "."+AppName),
		filepath.Join(os.TempDir(), AppName),
		pr.executableDir,
	}
	for _, dir := range fallbacks {
		if isWritableDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}
	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// FindPatternsFile resolves a pattern file. A given path is tried as is,
// then relative to the binary and the config directory. With no path the
// default names are searched in the config directory and next to the binary.
func (pr *PathResolver) FindPatternsFile(userPath string) (string, error) {
	var candidates []string
	if userPath != "" {
		candidates = append(candidates, userPath)
		if !filepath.IsAbs(userPath) {
			candidates = append(candidates,
				filepath.Join(pr.executableDir, userPath),
				filepath.Join(pr.configDir, userPath))
		}
	} else {
		for _, dir := range []string{pr.configDir, pr.executableDir} {
			for _, name := range PatternFileNames {
				candidates = append(candidates, filepath.Join(dir, name))
			}
		}
	}

	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Found pattern file: %s", path)
			return path, nil
		}
		log.Debugf("Pattern file candidate not found: %s", path)
	}
	return "", os.ErrNotExist
}
