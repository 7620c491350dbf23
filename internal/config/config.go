package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/varalys/licensecheck/internal/types"
)

// FileConfig is the on-disk YAML configuration shape for licensecheck.
type FileConfig struct {
	Ecosystem      *string `yaml:"ecosystem"`
	Format         *string `yaml:"format"`
	Output         *string `yaml:"output"`
	Ignore         *string `yaml:"ignore"`
	Baseline       *string `yaml:"baseline"`
	FailOnFindings *bool   `yaml:"fail_on_findings"`
	NoColor        *bool   `yaml:"no_color"`
	Timeout        *string `yaml:"timeout"`

	// Per-ecosystem tool overrides
	Tools *ToolsConfig `yaml:"tools"`
}

// ToolsConfig holds overrides for each ecosystem's license tool.
type ToolsConfig struct {
	Python *ToolConfig `yaml:"python"`
	Node   *ToolConfig `yaml:"node"`
	Ruby   *ToolConfig `yaml:"ruby"`
	Java   *ToolConfig `yaml:"java"`
}

// ToolConfig overrides how one license tool is located.
type ToolConfig struct {
	// Binary is an explicit path to the tool. If empty, $PATH is searched.
	Binary *string `yaml:"binary"`

	// ReportFile is where the tool leaves its report, relative to the
	// project directory. Only file-based tools (java) read it.
	ReportFile *string `yaml:"report_file"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".licensecheck.yml", ".licensecheck.yaml", "licensecheck.yml", "licensecheck.yaml"}

// LoadLocal searches for a project-local config file in the given root.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "licensecheck", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GetTools returns the tool overrides, never nil.
func (fc FileConfig) GetTools() ToolsConfig {
	if fc.Tools == nil {
		return ToolsConfig{}
	}
	return *fc.Tools
}

// MergeTools overlays local tool settings on global ones, field by field.
func MergeTools(local, global ToolsConfig) ToolsConfig {
	return ToolsConfig{
		Python: mergeTool(local.Python, global.Python),
		Node:   mergeTool(local.Node, global.Node),
		Ruby:   mergeTool(local.Ruby, global.Ruby),
		Java:   mergeTool(local.Java, global.Java),
	}
}

func mergeTool(local, global *ToolConfig) *ToolConfig {
	if local == nil {
		return global
	}
	if global == nil {
		return local
	}
	out := *global
	if local.Binary != nil {
		out.Binary = local.Binary
	}
	if local.ReportFile != nil {
		out.ReportFile = local.ReportFile
	}
	return &out
}

// For returns the overrides for eco. Missing entries yield a zero ToolConfig.
func (tc ToolsConfig) For(eco types.Ecosystem) ToolConfig {
	var p *ToolConfig
	switch eco {
	case types.Python:
		p = tc.Python
	case types.Node:
		p = tc.Node
	case types.Ruby:
		p = tc.Ruby
	case types.Java:
		p = tc.Java
	}
	if p == nil {
		return ToolConfig{}
	}
	return *p
}

// GetBinary returns the custom binary path or empty string.
func (c ToolConfig) GetBinary() string {
	if c.Binary == nil {
		return ""
	}
	return *c.Binary
}

// GetReportFile returns the report file override or empty string.
func (c ToolConfig) GetReportFile() string {
	if c.ReportFile == nil {
		return ""
	}
	return *c.ReportFile
}
