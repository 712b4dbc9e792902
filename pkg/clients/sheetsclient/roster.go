package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/roster"
)

// Expected column names in the team tab. Multi-value cells (roles, dates)
// hold semicolon-separated lists.
var teamFields = []string{
	"Name",
	"Roles",
	"Blockout Dates",
	"Preaching Dates",
	"Teaching Dates",
	"On Leave",
}

// Expected column names in the preachers tab
var preacherFields = []string{
	"Name",
	"Graphics Support",
	"Preaching Dates",
}

// ListRoster retrieves the full scheduling input from the configured
// spreadsheet: team, preachers, and worship-leader rotation tabs.
func (c *Client) ListRoster(cfg *config.Config) (*roster.Roster, error) {
	team, err := c.ListTeam(cfg)
	if err != nil {
		return nil, err
	}

	preachers, err := c.ListPreachers(cfg)
	if err != nil {
		return nil, err
	}

	rotation, err := c.ListRotation(cfg)
	if err != nil {
		return nil, err
	}

	return &roster.Roster{Team: team, Preachers: preachers, Rotation: rotation}, nil
}

// ListTeam retrieves and parses team members from the configured spreadsheet
func (c *Client) ListTeam(cfg *config.Config) ([]*model.Person, error) {
	values, err := c.GetValues(cfg.Sheets.SpreadsheetID, cfg.Sheets.TeamTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get team data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("team tab is empty")
	}

	team, err := parseTeam(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse team: %w", err)
	}

	return team, nil
}

// ListPreachers retrieves and parses the preaching calendar
func (c *Client) ListPreachers(cfg *config.Config) ([]*model.Preacher, error) {
	values, err := c.GetValues(cfg.Sheets.SpreadsheetID, cfg.Sheets.PreachersTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get preacher data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("preachers tab is empty")
	}

	preachers, err := parsePreachers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preachers: %w", err)
	}

	return preachers, nil
}

// ListRotation retrieves the worship-leader rotation order, one name per row
// under a "Name" header.
func (c *Client) ListRotation(cfg *config.Config) ([]string, error) {
	values, err := c.GetValues(cfg.Sheets.SpreadsheetID, cfg.Sheets.RotationTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get rotation data: %w", err)
	}

	return parseRotation(values)
}

// parseTeam converts raw spreadsheet data into Person structs, running the
// same role and date validation as the JSON roster loader.
func parseTeam(raw [][]interface{}) ([]*model.Person, error) {
	fieldIndexes, err := buildFieldIndexes(raw[0], teamFields)
	if err != nil {
		return nil, err
	}

	team := make([]*model.Person, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField(fieldIndexes, "Name", row)
		// Skip empty rows
		if name == "" {
			continue
		}

		person, err := roster.BuildPerson(
			name,
			splitList(getField(fieldIndexes, "Roles", row)),
			splitList(getField(fieldIndexes, "Blockout Dates", row)),
			splitList(getField(fieldIndexes, "Preaching Dates", row)),
			splitList(getField(fieldIndexes, "Teaching Dates", row)),
			parseBool(getField(fieldIndexes, "On Leave", row)),
		)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		team = append(team, person)
	}

	return team, nil
}

// parsePreachers converts raw spreadsheet data into Preacher structs
func parsePreachers(raw [][]interface{}) ([]*model.Preacher, error) {
	fieldIndexes, err := buildFieldIndexes(raw[0], preacherFields)
	if err != nil {
		return nil, err
	}

	preachers := make([]*model.Preacher, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		name := getField(fieldIndexes, "Name", row)
		if name == "" {
			continue
		}

		preacher, err := roster.BuildPreacher(
			name,
			getField(fieldIndexes, "Graphics Support", row),
			splitList(getField(fieldIndexes, "Preaching Dates", row)),
		)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		preachers = append(preachers, preacher)
	}

	return preachers, nil
}

// parseRotation reads the ordered name list, tolerating an optional header row.
func parseRotation(raw [][]interface{}) ([]string, error) {
	var rotation []string
	for i, row := range raw {
		if len(row) == 0 {
			continue
		}

		name, ok := row[0].(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)

		if i == 0 && name == "Name" {
			continue
		}
		if name == "" {
			continue
		}

		rotation = append(rotation, name)
	}

	return rotation, nil
}

// buildFieldIndexes maps expected column names to their position in the
// header row. A missing column is a hard error.
func buildFieldIndexes(headerRow []interface{}, fields []string) (map[string]int, error) {
	fieldIndexes := make(map[string]int)

	for _, field := range fields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	return fieldIndexes, nil
}

// getField returns the named cell from a row, or "" when the row is short
func getField(fieldIndexes map[string]int, field string, row []interface{}) string {
	index, ok := fieldIndexes[field]
	if !ok {
		return ""
	}
	if index >= len(row) {
		return ""
	}
	if str, ok := row[index].(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

// splitList splits a semicolon-separated cell into trimmed entries
func splitList(cell string) []string {
	if cell == "" {
		return nil
	}

	parts := strings.Split(cell, ";")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}

// parseBool accepts the spellings sheet checkboxes and hand-typed cells
// produce.
func parseBool(cell string) bool {
	switch strings.ToUpper(cell) {
	case "TRUE", "YES", "Y", "1":
		return true
	default:
		return false
	}
}
