package coverage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/scheduler/internal/domain/roster"
	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

// AppointmentSource is the slice of the scheduling repository coverage needs.
type AppointmentSource interface {
	ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, day time.Time) ([]*scheduling.Appointment, error)
	CreateBatch(ctx context.Context, appts []*scheduling.Appointment) error
}

// RosterSource resolves a team to its active members.
type RosterSource interface {
	ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*roster.StaffMember, error)
}

type Service struct {
	appts   AppointmentSource
	rosters RosterSource
	policy  BreakPolicy
}

func NewService(appts AppointmentSource, rosters RosterSource, policy BreakPolicy) *Service {
	return &Service{appts: appts, rosters: rosters, policy: policy}
}

func (s *Service) Policy() BreakPolicy { return s.policy }

func (s *Service) memberSchedules(ctx context.Context, teamID uuid.UUID, day time.Time) ([]MemberSchedule, error) {
	members, err := s.rosters.ListTeamMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	schedules := make([]MemberSchedule, 0, len(members))
	for _, m := range members {
		appts, err := s.appts.ListByStaffAndDay(ctx, m.ID, day)
		if err != nil {
			return nil, fmt.Errorf("loading schedule for %s: %w", m.ID, err)
		}
		schedules = append(schedules, MemberSchedule{StaffID: m.ID, Name: m.Name, Appointments: appts})
	}
	return schedules, nil
}

// TeamReport runs the coverage analysis for every member of a team on one day.
func (s *Service) TeamReport(ctx context.Context, teamID uuid.UUID, day time.Time) (*TeamReport, error) {
	schedules, err := s.memberSchedules(ctx, teamID, day)
	if err != nil {
		return nil, err
	}
	covs, teamWarnings, err := ValidateTeamCoverage(s.policy, day, schedules)
	if err != nil {
		return nil, err
	}
	return &TeamReport{
		TeamID:       teamID,
		Date:         day.Format("2006-01-02"),
		Members:      covs,
		TeamWarnings: teamWarnings,
	}, nil
}

// AutoSchedule places breaks for a team and, unless dryRun is set, persists
// the resulting drafts in one batch. Per-member failures are part of the
// result, not an error.
func (s *Service) AutoSchedule(ctx context.Context, teamID uuid.UUID, day time.Time, dryRun bool) (*AutoScheduleResult, error) {
	schedules, err := s.memberSchedules(ctx, teamID, day)
	if err != nil {
		return nil, err
	}
	result, err := AutoScheduleBreaks(s.policy, day, schedules)
	if err != nil {
		return nil, err
	}
	if dryRun || len(result.Assignments) == 0 {
		return &result, nil
	}

	title := "Lunch break"
	drafts := make([]*scheduling.Appointment, 0, len(result.Assignments))
	for _, asg := range result.Assignments {
		drafts = append(drafts, &scheduling.Appointment{
			ID:        uuid.New(),
			StaffID:   asg.StaffID,
			Status:    scheduling.StatusScheduled,
			Category:  scheduling.CategoryBreak,
			Title:     &title,
			StartTime: asg.StartTime,
			EndTime:   asg.EndTime,
		})
	}
	if err := s.appts.CreateBatch(ctx, drafts); err != nil {
		return nil, fmt.Errorf("persisting break assignments: %w", err)
	}
	result.Persisted = true
	log.Info().
		Str("team_id", teamID.String()).
		Str("date", day.Format("2006-01-02")).
		Int("assigned", len(result.Assignments)).
		Int("failed", len(result.Failures)).
		Msg("auto-scheduled team breaks")
	return &result, nil
}
