package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/assetrack/internal/config"
	"github.com/mrz1836/assetrack/internal/constants"
	"github.com/mrz1836/assetrack/internal/tui"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault ConfigSource = "default"
	// SourceGlobal indicates the value came from global config.
	SourceGlobal ConfigSource = "global"
	// SourceProject indicates the value came from project config.
	SourceProject ConfigSource = "project"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceFlag indicates the value came from a command-line flag.
	SourceFlag ConfigSource = "flag"
)

// ConfigValueWithSource represents a configuration value with its source.
type ConfigValueWithSource struct {
	Key    string       `json:"key" yaml:"key"`
	Value  any          `json:"value" yaml:"value"`
	Source ConfigSource `json:"source" yaml:"source"`
}

// AnnotatedConfig lists every effective setting with its source, in file order.
type AnnotatedConfig struct {
	Values      []ConfigValueWithSource `json:"values"`
	GlobalPath  string                  `json:"global_path"`
	ProjectPath string                  `json:"project_path"`
	DataDir     string                  `json:"data_dir"`
	LogFile     string                  `json:"log_file,omitempty"`
}

// flagKeys maps global flags to the config keys they override.
//
//nolint:gochecknoglobals // Static lookup table
var flagKeys = map[string]string{
	"identity": "identity.email",
	"data-dir": "storage.data_dir",
}

// configShowStyles contains styling for the config show command output.
type configShowStyles struct {
	header    lipgloss.Style
	section   lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	sourceFlg lipgloss.Style
	sourceEnv lipgloss.Style
	sourcePrj lipgloss.Style
	sourceGbl lipgloss.Style
	sourceDef lipgloss.Style
	dim       lipgloss.Style
}

// newConfigShowStyles creates styles for config show command output.
func newConfigShowStyles() *configShowStyles {
	return &configShowStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(tui.ColorPrimary).MarginBottom(1),
		section:   lipgloss.NewStyle().Bold(true),
		key:       lipgloss.NewStyle().Foreground(tui.ColorPrimary),
		value:     lipgloss.NewStyle(),
		sourceFlg: lipgloss.NewStyle().Foreground(tui.ColorError),
		sourceEnv: lipgloss.NewStyle().Foreground(tui.ColorError),
		sourcePrj: lipgloss.NewStyle().Foreground(tui.ColorWarning),
		sourceGbl: lipgloss.NewStyle().Foreground(tui.ColorSuccess),
		sourceDef: lipgloss.NewStyle().Foreground(tui.ColorMuted),
		dim:       lipgloss.NewStyle().Foreground(tui.ColorMuted),
	}
}

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective configuration with source annotations.

Each value shows where it comes from, highest precedence first:
  - flag:    --identity or --data-dir
  - env:     ASSETRACK_* environment variable
  - project: ./.assetrack.yaml
  - global:  ~/.assetrack/config.yaml
  - default: built-in default

Examples:
  assetrack config show
  assetrack config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ec, err := requireExecutionContext(cmd.Context())
			if err != nil {
				return err
			}
			changed := make(map[string]bool)
			for flag, key := range flagKeys {
				if f := cmd.Root().PersistentFlags().Lookup(flag); f != nil && f.Changed {
					changed[key] = true
				}
			}
			return runConfigShow(cmd.Context(), ec, cmd.OutOrStdout(), changed)
		},
	})

	root.AddCommand(cmd)
}

// runConfigShow prints the effective configuration. flagged holds the keys
// set by command-line flags.
func runConfigShow(ctx context.Context, ec *ExecutionContext, w io.Writer, flagged map[string]bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	annotated := buildAnnotatedConfig(ec, flagged)

	if ec.JSON() {
		return ec.Output(w).JSON(annotated)
	}
	return outputAnnotated(w, annotated)
}

// buildAnnotatedConfig pairs every effective value with its source.
func buildAnnotatedConfig(ec *ExecutionContext, flagged map[string]bool) *AnnotatedConfig {
	globalPath, _ := config.GlobalConfigPath()
	projectPath := config.ProjectConfigPath()
	globalCfg := loadConfigFile(globalPath)
	projectCfg := loadConfigFile(projectPath)

	cfg := ec.Config
	entries := []struct {
		key   string
		value any
	}{
		{"identity.email", cfg.Identity.Email},
		{"storage.data_dir", cfg.Storage.DataDir},
		{"storage.lock_timeout", cfg.Storage.LockTimeout.String()},
		{"view.default_sort", cfg.View.DefaultSort},
		{"view.width", cfg.View.Width},
		{"view.show_progress", cfg.View.ShowProgress},
		{"log.max_size_mb", cfg.Log.MaxSizeMB},
		{"log.max_backups", cfg.Log.MaxBackups},
		{"log.max_age_days", cfg.Log.MaxAgeDays},
	}

	annotated := &AnnotatedConfig{
		Values:      make([]ConfigValueWithSource, 0, len(entries)),
		GlobalPath:  globalPath,
		ProjectPath: projectPath,
		DataDir:     ec.DataDir,
	}
	if logPath, err := LogFilePath(); err == nil {
		annotated.LogFile = logPath
	}

	for _, e := range entries {
		annotated.Values = append(annotated.Values, ConfigValueWithSource{
			Key:    e.key,
			Value:  e.value,
			Source: determineSource(e.key, flagged, globalCfg, projectCfg),
		})
	}
	return annotated
}

// configValues holds the dotted keys present in one config file.
type configValues map[string]any

// loadConfigFile reads a YAML config file into dotted keys. A missing or
// unreadable file yields nil.
func loadConfigFile(path string) configValues {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path) //#nosec G304 -- config file path
	if err != nil {
		return nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	result := make(configValues)
	flattenInto(result, "", raw)
	return result
}

func flattenInto(dst configValues, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(dst, key, nested)
			continue
		}
		dst[key] = v
	}
}

// determineSource determines where a configuration value came from.
func determineSource(key string, flagged map[string]bool, globalCfg, projectCfg configValues) ConfigSource {
	if flagged[key] {
		return SourceFlag
	}

	envKey := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if os.Getenv(envKey) != "" {
		return SourceEnv
	}

	if _, ok := projectCfg[key]; ok {
		return SourceProject
	}
	if _, ok := globalCfg[key]; ok {
		return SourceGlobal
	}
	return SourceDefault
}

// outputAnnotated prints the configuration grouped by section with source comments.
func outputAnnotated(w io.Writer, annotated *AnnotatedConfig) error {
	styles := newConfigShowStyles()

	_, _ = fmt.Fprintln(w, styles.header.Render("Effective assetrack configuration"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("Sources: ")+
		styles.sourceFlg.Render("flag")+" > "+
		styles.sourceEnv.Render("env")+" > "+
		styles.sourcePrj.Render("project")+" > "+
		styles.sourceGbl.Render("global")+" > "+
		styles.sourceDef.Render("default"))
	_, _ = fmt.Fprintln(w)

	section := ""
	for _, vs := range annotated.Values {
		sec, name, _ := strings.Cut(vs.Key, ".")
		if sec != section {
			if section != "" {
				_, _ = fmt.Fprintln(w)
			}
			section = sec
			_, _ = fmt.Fprintln(w, styles.section.Render(sec+":"))
		}
		_, _ = fmt.Fprintf(w, "  %s: %s  %s\n",
			styles.key.Render(name),
			styles.value.Render(formatConfigValue(vs.Value)),
			getSourceStyle(vs.Source, styles).Render("# "+string(vs.Source)))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, styles.dim.Render("Files:"))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  Global:  ")+describePath(annotated.GlobalPath, styles))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  Project: ")+describePath(annotated.ProjectPath, styles))
	_, _ = fmt.Fprintln(w, styles.dim.Render("  Data:    ")+annotated.DataDir)
	if annotated.LogFile != "" {
		_, _ = fmt.Fprintln(w, styles.dim.Render("  Log:     ")+annotated.LogFile)
	}
	return nil
}

func describePath(path string, styles *configShowStyles) string {
	if path == "" {
		return styles.dim.Render("(unknown)")
	}
	if _, err := os.Stat(path); err != nil {
		return styles.dim.Render(path + " (not found)")
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// formatConfigValue converts a configuration value to a displayable string.
func formatConfigValue(value any) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "(not set)"
		}
		return v
	case time.Duration:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// getSourceStyle returns the appropriate style for a config source.
func getSourceStyle(source ConfigSource, styles *configShowStyles) lipgloss.Style {
	switch source {
	case SourceFlag:
		return styles.sourceFlg
	case SourceEnv:
		return styles.sourceEnv
	case SourceProject:
		return styles.sourcePrj
	case SourceGlobal:
		return styles.sourceGbl
	case SourceDefault:
		return styles.sourceDef
	default:
		return styles.sourceDef
	}
}
