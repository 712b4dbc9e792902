package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// Special-rule kinds accepted in the specialRules list.
const (
	RuleKindPreacherRequirement = "preacherRequirement"
	RuleKindPreacherExclusion   = "preacherExclusion"
	RuleKindReservedRole        = "reservedRole"
	RuleKindMutualExclusion     = "mutualExclusion"
	RuleKindRoleCutover         = "roleCutover"
)

// Roster sources accepted in the source field.
const (
	SourceFile   = "file"
	SourceSheets = "sheets"
)

// Default scheduling parameters used when the config leaves them unset.
const (
	DefaultRosterPath           = "roster.json"
	DefaultOutputDir            = "output"
	DefaultConsecutiveLimit     = 3
	DefaultRoleConsecutiveLimit = 2
	DefaultPreachingBufferWeeks = 1
)

// SpecialRule is one data-driven eligibility exception. Which fields are
// required depends on the kind; Validate enforces the per-kind shape.
type SpecialRule struct {
	Kind       string `yaml:"kind" validate:"required,oneof=preacherRequirement preacherExclusion reservedRole mutualExclusion roleCutover"`
	Person     string `yaml:"person,omitempty"`
	Role       string `yaml:"role,omitempty"`
	Preacher   string `yaml:"preacher,omitempty"`
	WhenRole   string `yaml:"whenRole,omitempty"`
	WhenPerson string `yaml:"whenPerson,omitempty"`
	Second     string `yaml:"second,omitempty"`
	Cutover    string `yaml:"cutover,omitempty"`
}

// SheetsSource points at the Google Sheets roster tabs.
type SheetsSource struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	TeamTab       string `yaml:"teamTab" validate:"required"`
	PreachersTab  string `yaml:"preachersTab" validate:"required"`
	RotationTab   string `yaml:"rotationTab" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	RosterPath string `yaml:"rosterPath,omitempty"`
	OutputDir  string `yaml:"outputDir,omitempty"`

	ConsecutiveLimit     int            `yaml:"consecutiveLimit,omitempty" validate:"omitempty,min=1"`
	RoleConsecutiveLimit int            `yaml:"roleConsecutiveLimit,omitempty" validate:"omitempty,min=1"`
	PreachingBufferWeeks int            `yaml:"preachingBufferWeeks,omitempty" validate:"omitempty,min=1"`
	RoleWindows          map[string]int `yaml:"roleWindows,omitempty"`
	SpecialRules         []SpecialRule  `yaml:"specialRules,omitempty" validate:"dive"`

	Source string        `yaml:"source,omitempty" validate:"omitempty,oneof=file sheets"`
	Sheets *SheetsSource `yaml:"sheets,omitempty"`

	PostgresURL string `yaml:"postgresUrl,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" looks for "config.test.yaml". The file is
// searched in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero-valued scheduling parameters so an empty config
// file still yields a working scheduler.
func applyDefaults(cfg *Config) {
	if cfg.RosterPath == "" {
		cfg.RosterPath = DefaultRosterPath
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.ConsecutiveLimit == 0 {
		cfg.ConsecutiveLimit = DefaultConsecutiveLimit
	}
	if cfg.RoleConsecutiveLimit == 0 {
		cfg.RoleConsecutiveLimit = DefaultRoleConsecutiveLimit
	}
	if cfg.PreachingBufferWeeks == 0 {
		cfg.PreachingBufferWeeks = DefaultPreachingBufferWeeks
	}
	if cfg.Source == "" {
		cfg.Source = SourceFile
	}
}

// Validate validates the configuration struct, role names in the cooldown
// map, and the per-kind shape of each special rule.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Source == SourceSheets && cfg.Sheets == nil {
		return fmt.Errorf("config validation failed: source is sheets but no sheets section is present")
	}

	for roleName, weeks := range cfg.RoleWindows {
		if _, err := model.ParseRole(roleName); err != nil {
			return fmt.Errorf("invalid role in roleWindows: %w", err)
		}
		if weeks < 0 {
			return fmt.Errorf("invalid roleWindows entry %q: weeks must not be negative", roleName)
		}
	}

	for i, rule := range cfg.SpecialRules {
		if err := validateSpecialRule(rule); err != nil {
			return fmt.Errorf("invalid specialRules[%d]: %w", i, err)
		}
	}

	return nil
}

// validateSpecialRule checks the fields each rule kind needs.
func validateSpecialRule(rule SpecialRule) error {
	requireField := func(name, value string) error {
		if value == "" {
			return fmt.Errorf("%s rule requires %s", rule.Kind, name)
		}
		return nil
	}
	requireRole := func(name, value string) error {
		if err := requireField(name, value); err != nil {
			return err
		}
		if _, err := model.ParseRole(value); err != nil {
			return fmt.Errorf("%s rule: %w", rule.Kind, err)
		}
		return nil
	}

	switch rule.Kind {
	case RuleKindPreacherRequirement, RuleKindPreacherExclusion:
		if err := requireField("person", rule.Person); err != nil {
			return err
		}
		if err := requireRole("role", rule.Role); err != nil {
			return err
		}
		return requireField("preacher", rule.Preacher)
	case RuleKindReservedRole:
		if err := requireField("person", rule.Person); err != nil {
			return err
		}
		if err := requireRole("role", rule.Role); err != nil {
			return err
		}
		if err := requireRole("whenRole", rule.WhenRole); err != nil {
			return err
		}
		return requireField("whenPerson", rule.WhenPerson)
	case RuleKindMutualExclusion:
		if err := requireField("person", rule.Person); err != nil {
			return err
		}
		return requireField("second", rule.Second)
	case RuleKindRoleCutover:
		if err := requireField("person", rule.Person); err != nil {
			return err
		}
		if err := requireRole("role", rule.Role); err != nil {
			return err
		}
		if err := requireField("cutover", rule.Cutover); err != nil {
			return err
		}
		if _, err := dates.ParseDate(rule.Cutover); err != nil {
			return fmt.Errorf("%s rule: invalid cutover date: %w", rule.Kind, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", rule.Kind)
	}
}

// findConfigFile searches for config.yaml in current directory and home
// directory. A non-empty env adds a suffix (e.g. "config.test.yaml").
func findConfigFile(env string) (string, error) {
	configFileName := "config.yaml"
	if env != "" {
		configFileName = "config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
