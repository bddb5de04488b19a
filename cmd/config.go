package cmd

import (
	"fmt"
	"strings"

	"db-migcheck/internal/report"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name           string            `mapstructure:"name"`
	Role           string            `mapstructure:"role"`
	Driver         string            `mapstructure:"driver"`
	DSN            string            `mapstructure:"dsn"`
	SecretID       string            `mapstructure:"secret_id"`
	Host           string            `mapstructure:"host"`
	Port           int               `mapstructure:"port"`
	Username       string            `mapstructure:"username"`
	Password       string            `mapstructure:"password"`
	Database       string            `mapstructure:"database"`
	PromptPassword bool              `mapstructure:"prompt_password"`
	Options        map[string]string `mapstructure:"options"`
}

// Label names the entry in logs and prompts.
func (c DBConfig) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Role
}

type Settings struct {
	FileFormat     string `mapstructure:"file_format"`
	OutputDir      string `mapstructure:"output_dir"`
	Parallel       bool   `mapstructure:"parallel"`
	Region         string `mapstructure:"region"`
	ExactRowCounts bool   `mapstructure:"exact_row_counts"`
}

const (
	roleSource = "source"
	roleTarget = "target"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings.file_format", report.FormatYAML)
	v.SetDefault("settings.output_dir", "output")
	v.SetDefault("settings.parallel", true)
	v.SetDefault("settings.region", "us-east-1")
	v.SetDefault("settings.exact_row_counts", false)
}

// GetSettings returns the run settings. Keys are read one by one so bound
// flags and MIGCHECK_SETTINGS_* variables override the file.
func GetSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		FileFormat:     v.GetString("settings.file_format"),
		OutputDir:      v.GetString("settings.output_dir"),
		Parallel:       v.GetBool("settings.parallel"),
		Region:         v.GetString("settings.region"),
		ExactRowCounts: v.GetBool("settings.exact_row_counts"),
	}
	f, err := report.CheckFormat(s.FileFormat)
	if err != nil {
		return s, err
	}
	s.FileFormat = f
	if s.OutputDir == "" {
		return s, fmt.Errorf("settings.output_dir must not be empty")
	}
	return s, nil
}

// GetSideConfigs returns the source and target database entries. Exactly
// one of each is required.
func GetSideConfigs(v *viper.Viper) (source, target DBConfig, err error) {
	var configs []DBConfig
	if err := v.UnmarshalKey("databases", &configs); err != nil {
		return source, target, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var sources, targets []DBConfig
	for _, c := range configs {
		switch strings.ToLower(strings.TrimSpace(c.Role)) {
		case roleSource:
			c.Role = roleSource
			sources = append(sources, c)
		case roleTarget:
			c.Role = roleTarget
			targets = append(targets, c)
		default:
			return source, target, fmt.Errorf("database %q: role must be source or target, got %q", c.Name, c.Role)
		}
	}

	if len(sources) != 1 {
		return source, target, fmt.Errorf("expected exactly one source database, found %d", len(sources))
	}
	if len(targets) != 1 {
		return source, target, fmt.Errorf("expected exactly one target database, found %d", len(targets))
	}

	for _, c := range []DBConfig{sources[0], targets[0]} {
		if c.Driver == "" {
			return source, target, fmt.Errorf("database %q: driver is required", c.Label())
		}
		if c.DSN == "" && c.SecretID == "" && c.Host == "" && c.Database == "" {
			return source, target, fmt.Errorf("database %q: set dsn, secret_id or host/database", c.Label())
		}
	}
	return sources[0], targets[0], nil
}
