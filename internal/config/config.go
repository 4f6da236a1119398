// Package config parses and validates proctmux.yaml.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/leo/proctmux/internal/errs"
)

// Default values, ported from the original serde defaults
// (config.rs: default_kill_signal, current_working_dir, default_autostart).
const (
	DefaultDetachedSessionName = "proctmux"
	DefaultProcessListWidth    = 31
	DefaultCategorySearchPrefix = "cat:"
	DefaultPointerChar         = "▶"
	DefaultStopSignal          = "SIGKILL"
)

// ProcessConfig is the immutable per-process configuration loaded from YAML.
type ProcessConfig struct {
	Shell       string            `yaml:"shell"`
	Cmd         []string          `yaml:"cmd"`
	Cwd         string            `yaml:"cwd"`
	Env         map[string]string `yaml:"env"`
	AddPath     []string          `yaml:"add_path"`
	Stop        string            `yaml:"stop"`
	Autostart   bool              `yaml:"autostart"`
	Autofocus   bool              `yaml:"autofocus"`
	Description string            `yaml:"description"`
	Docs        string            `yaml:"docs"`
	Categories  []string          `yaml:"categories"`
	MetaTags    []string          `yaml:"meta_tags"`
}

// Command returns the shell string to execute, preferring Shell over Cmd,
// matching process.rs's Process::command.
func (p ProcessConfig) Command() string {
	if p.Shell != "" {
		return p.Shell
	}
	quoted := make([]string, len(p.Cmd))
	for i, a := range p.Cmd {
		quoted[i] = "'" + a + "'"
	}
	return strings.Join(quoted, " ")
}

// StopSignal resolves the configured stop string to a syscall.Signal.
func (p ProcessConfig) StopSignal() (syscall.Signal, error) {
	return signalFromString(p.Stop)
}

func signalFromString(s string) (syscall.Signal, error) {
	switch s {
	case "", "SIGKILL":
		return syscall.SIGKILL, nil
	case "SIGINT":
		return syscall.SIGINT, nil
	case "SIGTERM":
		return syscall.SIGTERM, nil
	default:
		return 0, fmt.Errorf("unknown stop signal %q", s)
	}
}

// General holds the general.* config block.
type General struct {
	DetachedSessionName string `yaml:"detached_session_name"`
	KillExistingSession  bool   `yaml:"kill_existing_session"`
}

// Keybinding maps a symbolic action to its list of key literals.
type Keybinding struct {
	Quit          []string `yaml:"quit"`
	Start         []string `yaml:"start"`
	Stop          []string `yaml:"stop"`
	Up            []string `yaml:"up"`
	Down          []string `yaml:"down"`
	Filter        []string `yaml:"filter"`
	FilterSubmit  []string `yaml:"filter_submit"`
	SwitchFocus   []string `yaml:"switch_focus"`
}

func defaultKeybinding() Keybinding {
	return Keybinding{
		Quit:         []string{"q"},
		Start:        []string{"s"},
		Stop:         []string{"x"},
		Up:           []string{"k", "up"},
		Down:         []string{"j", "down"},
		Filter:       []string{"/"},
		FilterSubmit: []string{"enter"},
		SwitchFocus:  []string{"c-w"},
	}
}

// Layout holds layout.* configuration.
type Layout struct {
	HideHelp                    bool   `yaml:"hide_help"`
	HideProcessDescriptionPanel bool   `yaml:"hide_process_description_panel"`
	ProcessListWidth            int    `yaml:"process_list_width"`
	SortProcessListAlpha        *bool  `yaml:"sort_process_list_alpha"`
	CategorySearchPrefix        string `yaml:"category_search_prefix"`
}

// Style holds style.* configuration: fg/bg colors and the pointer glyph.
type Style struct {
	SelectedProcessBgColor   string `yaml:"selected_process_bg_color"`
	SelectedProcessFgColor   string `yaml:"selected_process_fg_color"`
	UnselectedProcessFgColor string `yaml:"unselected_process_fg_color"`
	StatusRunningColor       string `yaml:"status_running_color"`
	StatusHaltingColor       string `yaml:"status_halting_color"`
	StatusStoppedColor       string `yaml:"status_stopped_color"`
	PointerChar              string `yaml:"pointer_char"`
}

// Config is the root of proctmux.yaml.
type Config struct {
	LogFile    string                   `yaml:"log_file"`
	General    General                  `yaml:"general"`
	Procs      map[string]ProcessConfig `yaml:"procs"`
	Keybinding Keybinding               `yaml:"keybinding"`
	Layout     Layout                   `yaml:"layout"`
	Style      Style                    `yaml:"style"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.ConfigError{Err: err}
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(false)
	if err := dec.Decode(&cfg); err != nil {
		return nil, &errs.ConfigError{Err: err}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, &errs.ConfigError{Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, &errs.ConfigError{Err: err}
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.General.DetachedSessionName == "" {
		c.General.DetachedSessionName = DefaultDetachedSessionName
	}
	if c.Layout.ProcessListWidth == 0 {
		c.Layout.ProcessListWidth = DefaultProcessListWidth
	}
	if c.Layout.CategorySearchPrefix == "" {
		c.Layout.CategorySearchPrefix = DefaultCategorySearchPrefix
	}
	if c.Layout.SortProcessListAlpha == nil {
		t := true
		c.Layout.SortProcessListAlpha = &t
	}
	if c.Style.PointerChar == "" {
		c.Style.PointerChar = DefaultPointerChar
	}

	def := defaultKeybinding()
	if len(c.Keybinding.Quit) == 0 {
		c.Keybinding.Quit = def.Quit
	}
	if len(c.Keybinding.Start) == 0 {
		c.Keybinding.Start = def.Start
	}
	if len(c.Keybinding.Stop) == 0 {
		c.Keybinding.Stop = def.Stop
	}
	if len(c.Keybinding.Up) == 0 {
		c.Keybinding.Up = def.Up
	}
	if len(c.Keybinding.Down) == 0 {
		c.Keybinding.Down = def.Down
	}
	if len(c.Keybinding.Filter) == 0 {
		c.Keybinding.Filter = def.Filter
	}
	if len(c.Keybinding.FilterSubmit) == 0 {
		c.Keybinding.FilterSubmit = def.FilterSubmit
	}
	if len(c.Keybinding.SwitchFocus) == 0 {
		c.Keybinding.SwitchFocus = def.SwitchFocus
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	for name, p := range c.Procs {
		if p.Cwd == "" {
			p.Cwd = cwd
		}
		if p.Stop == "" {
			p.Stop = DefaultStopSignal
		}
		c.Procs[name] = p
	}
	return nil
}

func (c *Config) validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file is required")
	}
	for name, p := range c.Procs {
		if p.Shell == "" && len(p.Cmd) == 0 {
			return fmt.Errorf("process %q: one of shell or cmd is required", name)
		}
		if p.Shell != "" && len(p.Cmd) > 0 {
			return fmt.Errorf("process %q: shell and cmd are mutually exclusive", name)
		}
		if _, err := p.StopSignal(); err != nil {
			return fmt.Errorf("process %q: %w", name, err)
		}
	}
	return nil
}

// SortedProcNames returns process labels, sorted alphabetically when
// layout.sort_process_list_alpha is set (the default), else in map order
// is not stable so we fall back to alphabetical regardless — Go maps have
// no insertion order to preserve, unlike the original's IndexMap.
func (c *Config) SortedProcNames() []string {
	names := make([]string, 0, len(c.Procs))
	for name := range c.Procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
