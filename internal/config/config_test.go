package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		RoleWindows: map[string]int{
			"WORSHIP LEADER": 4,
			"EMCEE":          2,
		},
		SpecialRules: []SpecialRule{
			{Kind: RuleKindPreacherRequirement, Person: "Lulu", Role: "EMCEE", Preacher: "Pastor Ed"},
			{Kind: RuleKindMutualExclusion, Person: "Jeff", Second: "Mariel"},
		},
		Source: "file",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_SheetsSourceRequiresSection(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		Source:               "sheets",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no sheets section")
}

func TestValidate_SheetsSourceComplete(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		Source:               "sheets",
		Sheets: &SheetsSource{
			SpreadsheetID: "sheet123",
			TeamTab:       "Team!A1:J50",
			PreachersTab:  "Preachers!A1:C20",
			RotationTab:   "Rotation!A1:A10",
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_UnknownSource(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		Source:               "carrier-pigeon",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRoleWindowRole(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		RoleWindows:          map[string]int{"TRIANGLE": 4},
		Source:               "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role in roleWindows")
}

func TestValidate_NegativeRoleWindow(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		RoleWindows:          map[string]int{"EMCEE": -1},
		Source:               "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
}

func TestValidate_NonPositiveLimit(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     -3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		Source:               "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SpecialRuleUnknownKind(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		SpecialRules:         []SpecialRule{{Kind: "banishment", Person: "Jeff"}},
		Source:               "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SpecialRuleMissingPreacher(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		SpecialRules: []SpecialRule{
			{Kind: RuleKindPreacherExclusion, Person: "Gee", Role: "WORSHIP LEADER"},
		},
		Source: "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires preacher")
}

func TestValidate_SpecialRuleBadCutoverDate(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		SpecialRules: []SpecialRule{
			{Kind: RuleKindRoleCutover, Person: "Mark", Role: "DRUMS", Cutover: "September 1st"},
		},
		Source: "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cutover date")
}

func TestValidate_SpecialRuleBadRole(t *testing.T) {
	cfg := &Config{
		RosterPath:           "team.json",
		OutputDir:            "out",
		ConsecutiveLimit:     3,
		RoleConsecutiveLimit: 2,
		PreachingBufferWeeks: 1,
		SpecialRules: []SpecialRule{
			{Kind: RuleKindReservedRole, Person: "Kris", Role: "KAZOO", WhenRole: "WORSHIP LEADER", WhenPerson: "Gee"},
		},
		Source: "file",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
rosterPath: "team.json"
outputDir: "schedules"
consecutiveLimit: 4
roleConsecutiveLimit: 2
preachingBufferWeeks: 1
roleWindows:
  "WORSHIP LEADER": 4
  "SUNDAY SCHOOL TEACHER": 4
  "EMCEE": 2
specialRules:
  - kind: preacherRequirement
    person: "Lulu"
    role: "EMCEE"
    preacher: "Pastor Ed"
  - kind: reservedRole
    person: "Kris"
    role: "ACOUSTIC GUITAR"
    whenRole: "WORSHIP LEADER"
    whenPerson: "Gee"
  - kind: roleCutover
    person: "Mark"
    role: "DRUMS"
    cutover: "2025-09-01"
postgresUrl: "postgres://localhost:5432/worship"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "team.json", cfg.RosterPath)
	assert.Equal(t, "schedules", cfg.OutputDir)
	assert.Equal(t, 4, cfg.ConsecutiveLimit)
	assert.Equal(t, 2, cfg.RoleConsecutiveLimit)
	assert.Equal(t, 1, cfg.PreachingBufferWeeks)
	assert.Equal(t, "file", cfg.Source)
	assert.Equal(t, "postgres://localhost:5432/worship", cfg.PostgresURL)

	assert.Equal(t, 4, cfg.RoleWindows["WORSHIP LEADER"])
	assert.Equal(t, 2, cfg.RoleWindows["EMCEE"])

	require.Len(t, cfg.SpecialRules, 3)
	assert.Equal(t, RuleKindPreacherRequirement, cfg.SpecialRules[0].Kind)
	assert.Equal(t, "Lulu", cfg.SpecialRules[0].Person)
	assert.Equal(t, "Gee", cfg.SpecialRules[1].WhenPerson)
	assert.Equal(t, "2025-09-01", cfg.SpecialRules[2].Cutover)
}

func TestLoadFromPath_EmptyConfigGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty_config.yaml")

	err := os.WriteFile(configPath, []byte(""), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, DefaultRosterPath, cfg.RosterPath)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultConsecutiveLimit, cfg.ConsecutiveLimit)
	assert.Equal(t, DefaultRoleConsecutiveLimit, cfg.RoleConsecutiveLimit)
	assert.Equal(t, DefaultPreachingBufferWeeks, cfg.PreachingBufferWeeks)
	assert.Equal(t, "file", cfg.Source)
	assert.Empty(t, cfg.RoleWindows)
	assert.Empty(t, cfg.SpecialRules)
	assert.Empty(t, cfg.PostgresURL)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
rosterPath: "team.json"
  invalid indentation
outputDir: "out"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_BadSpecialRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad_rule.yaml")

	badRule := `
specialRules:
  - kind: mutualExclusion
    person: "Jeff"
`

	err := os.WriteFile(configPath, []byte(badRule), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires second")
}
