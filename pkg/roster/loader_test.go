package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRoster_FullRoster(t *testing.T) {
	path := writeRoster(t, `{
  "team": [
    {
      "name": "Gee",
      "roles": ["WORSHIP LEADER", "ACOUSTIC GUITAR"],
      "blockoutDates": ["2025-04-06"],
      "teachingDates": ["2025-04-20"]
    },
    {
      "name": "Dave",
      "roles": ["BASS"],
      "preachingDates": ["2025-04-13"],
      "onLeave": true
    }
  ],
  "preachers": [
    {"name": "Pastor Ed", "graphicsSupport": "Media Team", "dates": ["2025-04-06", "2025-04-13"]}
  ],
  "rotation": ["Gee", "Dave"]
}`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)

	require.Len(t, roster.Team, 2)
	gee := roster.Team[0]
	assert.Equal(t, "Gee", gee.Name)
	assert.Equal(t, []model.Role{model.RoleWorshipLeader, model.RoleAcoustic}, gee.Roles)
	require.Len(t, gee.BlockoutDates, 1)
	assert.Equal(t, time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC), gee.BlockoutDates[0])
	require.Len(t, gee.TeachingDates, 1)
	assert.False(t, gee.OnLeave)

	dave := roster.Team[1]
	assert.True(t, dave.OnLeave)
	require.Len(t, dave.PreachingDates, 1)

	require.Len(t, roster.Preachers, 1)
	assert.Equal(t, "Pastor Ed", roster.Preachers[0].Name)
	assert.Equal(t, "Media Team", roster.Preachers[0].GraphicsSupport)
	assert.Len(t, roster.Preachers[0].Dates, 2)

	assert.Equal(t, []string{"Gee", "Dave"}, roster.Rotation)
}

func TestLoadRoster_MinimalRoster(t *testing.T) {
	path := writeRoster(t, `{"team": [{"name": "Solo", "roles": ["KEYS"]}]}`)

	roster, err := LoadRoster(path)
	require.NoError(t, err)

	require.Len(t, roster.Team, 1)
	assert.Empty(t, roster.Preachers)
	assert.Empty(t, roster.Rotation)
}

func TestLoadRoster_UnknownRole(t *testing.T) {
	path := writeRoster(t, `{"team": [{"name": "Gee", "roles": ["TRIANGLE"]}]}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRole)
	assert.Contains(t, err.Error(), "Gee")
}

func TestLoadRoster_MalformedDate(t *testing.T) {
	path := writeRoster(t, `{"team": [{"name": "Gee", "roles": ["KEYS"], "blockoutDates": ["April 6th"]}]}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blockoutDates")
	assert.Contains(t, err.Error(), "Gee")
}

func TestLoadRoster_MalformedPreacherDate(t *testing.T) {
	path := writeRoster(t, `{
  "team": [{"name": "Gee", "roles": ["KEYS"]}],
  "preachers": [{"name": "Pastor Ed", "dates": ["06/04/2025"]}]
}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Pastor Ed")
}

func TestLoadRoster_MissingName(t *testing.T) {
	path := writeRoster(t, `{"team": [{"roles": ["KEYS"]}]}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadRoster_EmptyTeam(t *testing.T) {
	path := writeRoster(t, `{"team": []}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadRoster_InvalidJSON(t *testing.T) {
	path := writeRoster(t, `{"team": [}`)

	_, err := LoadRoster(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse roster file")
}

func TestLoadRoster_FileNotFound(t *testing.T) {
	_, err := LoadRoster("/nonexistent/roster.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read roster file")
}

func TestMissingRotationNames(t *testing.T) {
	roster := &Roster{
		Team: []*model.Person{
			model.NewPerson("Gee", []model.Role{model.RoleWorshipLeader}),
			model.NewPerson("Dave", []model.Role{model.RoleBass}),
		},
		Rotation: []string{"Gee", "Ghost", "Dave", "Phantom"},
	}

	missing := MissingRotationNames(roster)
	assert.Equal(t, []string{"Ghost", "Phantom"}, missing)
}

func TestMissingRotationNames_AllPresent(t *testing.T) {
	roster := &Roster{
		Team:     []*model.Person{model.NewPerson("Gee", []model.Role{model.RoleWorshipLeader})},
		Rotation: []string{"Gee"},
	}

	assert.Empty(t, MissingRotationNames(roster))
}
