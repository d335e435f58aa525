package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Port        int               `yaml:"port"`
	Assets      AssetsConfig      `yaml:"assets,omitempty"`
	AI          AIConfig          `yaml:"ai,omitempty"`
	Logging     LoggingConfig     `yaml:"logging"`
	Audit       AuditConfig       `yaml:"audit,omitempty"`
	History     HistoryConfig     `yaml:"history,omitempty"`
	Preview     PreviewConfig     `yaml:"preview,omitempty"`
	Maintenance MaintenanceConfig `yaml:"maintenance,omitempty"`
}

// AssetsConfig locates variant specification and template files.
type AssetsConfig struct {
	RootDir      string `yaml:"root_dir,omitempty"`
	SpecsDir     string `yaml:"specs_dir,omitempty"`
	TemplatesDir string `yaml:"templates_dir,omitempty"`
}

// SpecsPath returns the absolute directory holding variant spec documents.
func (a AssetsConfig) SpecsPath() string {
	return a.resolve(a.SpecsDir, "specs")
}

// TemplatesPath returns the absolute directory holding slide templates.
func (a AssetsConfig) TemplatesPath() string {
	return a.resolve(a.TemplatesDir, "templates")
}

func (a AssetsConfig) resolve(dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	root := a.RootDir
	if root == "" {
		root = filepath.Join(getExecutableDir(), "assets")
	}
	return filepath.Join(root, dir)
}

type AIConfig struct {
	Provider string `yaml:"provider,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model,omitempty"`
	// MaxTokens caps the generation call; 0 uses the provider default.
	MaxTokens int `yaml:"max_tokens,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AuditConfig controls the composed-instruction audit trail.
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled,omitempty"`
	Dir           string `yaml:"dir,omitempty"`
	RetentionDays int    `yaml:"retention_days,omitempty"`
	FilePrefix    string `yaml:"file_prefix,omitempty"`
}

// HistoryConfig controls the SQLite generation history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// PreviewConfig controls headless-browser slide previews.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Height  int    `yaml:"height,omitempty"`
}

// MaintenanceConfig holds cron expressions for background upkeep.
type MaintenanceConfig struct {
	AuditPruneSchedule string `yaml:"audit_prune_schedule,omitempty"`
	CacheClearSchedule string `yaml:"cache_clear_schedule,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: 8090,
		Logging: LoggingConfig{
			Level: "info",
			File:  "/tmp/slidesmith.log",
		},
		Audit: AuditConfig{
			Enabled:       false,
			Dir:           ".slidesmith/audit",
			RetentionDays: 7,
			FilePrefix:    "compose",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".slidesmith/history.db",
		},
		Preview: PreviewConfig{
			Enabled: false,
			Dir:     ".slidesmith/previews",
			Width:   1280,
			Height:  720,
		},
		Maintenance: MaintenanceConfig{
			AuditPruneSchedule: "0 0 3 * * *",
		},
	}
}

func ConfigDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".slidesmith")
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".slidesmith.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
