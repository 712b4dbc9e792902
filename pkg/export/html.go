package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
)

// NarrativeDateFormat renders dates inside the HTML report, e.g. "April-06-2025".
const NarrativeDateFormat = "January-02-2006"

// RoleMembers lists everyone capable of a role.
type RoleMembers struct {
	Role    string
	Members []string
}

// MemberDetail is one team member's availability summary.
type MemberDetail struct {
	Name    string
	Details []string
}

// AssignedLine is one filled slot on an event.
type AssignedLine struct {
	Role   string
	Person string
}

// AlternateLine is one open slot with the people who could stand in if the
// rotation limits were waived.
type AlternateLine struct {
	Role       string
	Candidates string
}

// UnassignedPerson is a team member with no slot on an event, with the
// status explaining why.
type UnassignedPerson struct {
	Name   string
	Status string
}

// EventDetail is the narrative breakdown of one event.
type EventDetail struct {
	Title            string
	PreacherName     string
	Graphics         string
	Assigned         []AssignedLine
	Unassigned       []AlternateLine
	UnassignedPeople []UnassignedPerson
}

// ScheduleReport is the full HTML report model.
type ScheduleReport struct {
	Title         string
	ScheduleTitle string
	Roles         []RoleMembers
	Members       []MemberDetail
	Events        []EventDetail
}

// BuildScheduleReport assembles the narrative report: capability listing per
// role, per-member details, and per-event assignment breakdowns. The
// consecutive limit feeds the status shown next to unassigned people.
func BuildScheduleReport(events []*scheduler.Event, team []*model.Person, start, end time.Time, consecutiveLimit int) ScheduleReport {
	report := ScheduleReport{
		Title: "Worship Schedule",
		ScheduleTitle: fmt.Sprintf("Team Schedule from %s to %s",
			start.Format(NarrativeDateFormat), end.Format(NarrativeDateFormat)),
	}

	for _, role := range model.ScheduleOrder() {
		members := RoleMembers{Role: role.String()}
		for _, person := range team {
			if person.HasRole(role) {
				members.Members = append(members.Members, person.Name)
			}
		}
		report.Roles = append(report.Roles, members)
	}

	for _, person := range team {
		report.Members = append(report.Members, memberDetail(person))
	}

	for _, event := range events {
		report.Events = append(report.Events, eventDetail(event, consecutiveLimit))
	}

	return report
}

func memberDetail(person *model.Person) MemberDetail {
	roleNames := make([]string, 0, len(person.Roles))
	for _, role := range person.Roles {
		roleNames = append(roleNames, role.String())
	}

	onLeave := "No"
	if person.OnLeave {
		onLeave = "Yes"
	}

	return MemberDetail{
		Name: person.Name,
		Details: []string{
			"Roles: " + strings.Join(roleNames, ", "),
			"Blockout Dates: " + joinDates(person.BlockoutDates),
			"Preaching Dates: " + joinDates(person.PreachingDates),
			"Teaching Dates: " + joinDates(person.TeachingDates),
			"On Leave: " + onLeave,
			"Assigned Dates: " + joinDates(person.AssignedDates),
		},
	}
}

func eventDetail(event *scheduler.Event, consecutiveLimit int) EventDetail {
	detail := EventDetail{
		Title: "Event on " + event.Date.Format(NarrativeDateFormat),
	}

	if preacher := event.Preacher(); preacher != nil {
		detail.PreacherName = preacher.Name
		detail.Graphics = preacher.GraphicsSupport
	}

	for _, role := range event.AssignedRoles() {
		detail.Assigned = append(detail.Assigned, AssignedLine{
			Role:   role.String(),
			Person: event.Roles[role],
		})
	}

	for _, role := range event.UnassignedRoles() {
		var candidates []string
		for _, person := range event.Team {
			if event.IsAssignableIfNeeded(role, person) {
				candidates = append(candidates, person.Name)
			}
		}
		line := AlternateLine{Role: role.String(), Candidates: strings.Join(candidates, ", ")}
		if line.Candidates == "" {
			line.Candidates = "None"
		}
		detail.Unassigned = append(detail.Unassigned, line)
	}

	for _, name := range event.UnassignedNames() {
		person, ok := event.PersonFor(name)
		if !ok {
			continue
		}
		detail.UnassignedPeople = append(detail.UnassignedPeople, UnassignedPerson{
			Name:   name,
			Status: string(model.StatusOn(person, event.Date, consecutiveLimit)),
		})
	}

	return detail
}

func joinDates(dates []time.Time) string {
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(NarrativeDateFormat))
	}
	return strings.Join(formatted, ", ")
}

// HTMLExporter renders a ScheduleReport into a standalone HTML document.
type HTMLExporter struct{}

// NewHTMLExporter builds an HTML exporter.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Render executes the report template.
func (e *HTMLExporter) Render(report ScheduleReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := reportTemplate.Execute(buf, report); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("schedule").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; }
.link { display: block; margin-bottom: 20px; color: #0056b3; text-decoration: none; }
.section { margin-bottom: 20px; }
h2 { background-color: #f0f0f0; padding: 10px; border-radius: 5px; }
h2, h3, h4 { text-transform: uppercase; font-weight: bold; }
ul { list-style-type: none; padding: 0; }
li, p { padding: 5px; border-bottom: 1px solid #ddd; }
.back-to-top {
    position: fixed;
    bottom: 20px;
    right: 20px;
    width: 50px;
    height: 50px;
    background-color: #007BFF;
    color: white;
    text-align: center;
    line-height: 50px;
    border-radius: 50%;
    text-decoration: none;
    font-size: 24px;
}
.back-to-top:hover { background-color: #0056b3; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<nav class="section" id="nav-links">
<a class="link" href="#roles">Team Members by Role</a>
<a class="link" href="#team">{{.ScheduleTitle}}</a>
<a class="link" href="#events">Sunday Events</a>
</nav>

<div class="section" id="roles">
<h2>Team Members by Role</h2>
{{range .Roles}}<h3>Role: {{.Role}}</h3>
<ul class="members-by-role">
{{range .Members}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</div>

<div class="section" id="team">
<h2>{{.ScheduleTitle}}</h2>
{{range .Members}}<h3>{{.Name}}</h3>
<ul class="member-details">
{{range .Details}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</div>

<div class="section" id="events">
<h2>Sunday Events</h2>
{{range .Events}}<h3>{{.Title}}</h3>
<ul class="event-details">
<li><h4>Preaching</h4></li>
<li>PREACHER: {{.PreacherName}}</li>
<li>GRAPHICS: {{.Graphics}}</li>
<li><h4>Assigned Roles</h4></li>
{{range .Assigned}}<li>{{.Role}}: {{.Person}}</li>
{{end}}<li><h4>Unassigned Roles</h4></li>
{{range .Unassigned}}<li>{{.Role}} &rarr; Can be assigned to: {{.Candidates}}</li>
{{end}}<li><h4>Unassigned People</h4></li>
{{range .UnassignedPeople}}<li>{{.Name}} ({{.Status}})</li>
{{end}}</ul>
{{end}}</div>

<a href="#" class="back-to-top">&uarr;</a>
</body>
</html>
`))
