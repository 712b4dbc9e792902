package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// MemberStatus is one team member's derived status on a date.
type MemberStatus struct {
	Name   string
	Roles  []model.Role
	Status model.PersonStatus
}

// TeamStatusResult lists every member's status on the checked date, in
// roster order.
type TeamStatusResult struct {
	Date    time.Time
	Members []MemberStatus
}

// TeamStatus derives what each team member is doing (or why they are
// unavailable) on checkDate.
func TeamStatus(
	source RosterSource,
	cfg *config.Config,
	logger *zap.Logger,
	checkDate time.Time,
) (*TeamStatusResult, error) {
	logger.Debug("Starting teamStatus", zap.String("date", dates.FormatDate(checkDate)))

	rosterData, err := source.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	logger.Debug("Loaded roster", zap.Int("team_size", len(rosterData.Team)))

	members := make([]MemberStatus, 0, len(rosterData.Team))
	for _, person := range rosterData.Team {
		members = append(members, MemberStatus{
			Name:   person.Name,
			Roles:  person.Roles,
			Status: model.StatusOn(person, checkDate, cfg.ConsecutiveLimit),
		})
	}

	return &TeamStatusResult{
		Date:    checkDate,
		Members: members,
	}, nil
}
