package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// personRecord is the on-disk shape of a team member. Dates are YYYY-MM-DD
// strings; roles use the canonical uppercase names.
type personRecord struct {
	Name           string   `json:"name" validate:"required"`
	Roles          []string `json:"roles,omitempty"`
	BlockoutDates  []string `json:"blockoutDates,omitempty"`
	PreachingDates []string `json:"preachingDates,omitempty"`
	TeachingDates  []string `json:"teachingDates,omitempty"`
	OnLeave        bool     `json:"onLeave,omitempty"`
}

type preacherRecord struct {
	Name            string   `json:"name" validate:"required"`
	GraphicsSupport string   `json:"graphicsSupport,omitempty"`
	Dates           []string `json:"dates,omitempty"`
}

type rosterFile struct {
	Team      []personRecord   `json:"team" validate:"required,min=1,dive"`
	Preachers []preacherRecord `json:"preachers,omitempty" validate:"dive"`
	Rotation  []string         `json:"rotation,omitempty"`
}

// Roster is the fully parsed scheduling input: the team, the preaching
// calendar, and the worship-leader rotation order.
type Roster struct {
	Team      []*model.Person
	Preachers []*model.Preacher
	Rotation  []string
}

// LoadRoster reads and validates a roster JSON file. Any unknown role or
// malformed date aborts the load with the offending record named.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var file rosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("roster validation failed: %w", err)
	}

	return buildRoster(&file)
}

func buildRoster(file *rosterFile) (*Roster, error) {
	roster := &Roster{
		Team:      make([]*model.Person, 0, len(file.Team)),
		Preachers: make([]*model.Preacher, 0, len(file.Preachers)),
		Rotation:  append([]string(nil), file.Rotation...),
	}

	for _, rec := range file.Team {
		person, err := BuildPerson(rec.Name, rec.Roles, rec.BlockoutDates, rec.PreachingDates, rec.TeachingDates, rec.OnLeave)
		if err != nil {
			return nil, err
		}
		roster.Team = append(roster.Team, person)
	}

	for _, rec := range file.Preachers {
		preacher, err := BuildPreacher(rec.Name, rec.GraphicsSupport, rec.Dates)
		if err != nil {
			return nil, err
		}
		roster.Preachers = append(roster.Preachers, preacher)
	}

	return roster, nil
}

// BuildPerson converts raw roster strings into a Person, validating every
// role and date. Shared with the Sheets source so both parse identically.
func BuildPerson(name string, roles, blockout, preaching, teaching []string, onLeave bool) (*model.Person, error) {
	parsedRoles := make([]model.Role, 0, len(roles))
	for _, raw := range roles {
		role, err := model.ParseRole(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid person %q: %w", name, err)
		}
		parsedRoles = append(parsedRoles, role)
	}

	person := model.NewPerson(name, parsedRoles)
	person.OnLeave = onLeave

	var err error
	if person.BlockoutDates, err = parseDateList(name, "blockoutDates", blockout); err != nil {
		return nil, err
	}
	if person.PreachingDates, err = parseDateList(name, "preachingDates", preaching); err != nil {
		return nil, err
	}
	if person.TeachingDates, err = parseDateList(name, "teachingDates", teaching); err != nil {
		return nil, err
	}

	return person, nil
}

// BuildPreacher converts raw preacher strings into a Preacher.
func BuildPreacher(name, graphicsSupport string, dateStrings []string) (*model.Preacher, error) {
	parsed, err := parseDateList(name, "dates", dateStrings)
	if err != nil {
		return nil, err
	}

	return model.NewPreacher(name, graphicsSupport, parsed), nil
}

func parseDateList(owner, field string, raw []string) ([]time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	parsed := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := dates.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s for %q: %w", field, owner, err)
		}
		parsed = append(parsed, d)
	}

	return parsed, nil
}

// MissingRotationNames returns rotation entries naming nobody on the team.
// Callers warn on these rather than failing the load; the selector simply
// never picks them.
func MissingRotationNames(roster *Roster) []string {
	teamNames := make(map[string]bool, len(roster.Team))
	for _, person := range roster.Team {
		teamNames[person.Name] = true
	}

	var missing []string
	for _, name := range roster.Rotation {
		if !teamNames[name] {
			missing = append(missing, name)
		}
	}

	return missing
}
