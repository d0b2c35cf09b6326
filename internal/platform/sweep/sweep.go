package sweep

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/carebridge/scheduler/internal/domain/coverage"
	"github.com/carebridge/scheduler/internal/domain/roster"
)

// Reporter produces a coverage report for one team and day.
type Reporter interface {
	TeamReport(ctx context.Context, teamID uuid.UUID, day time.Time) (*coverage.TeamReport, error)
}

// TeamLister enumerates the teams to sweep.
type TeamLister interface {
	ListTeams(ctx context.Context, limit, offset int) ([]*roster.Team, int, error)
}

// Sweeper runs a scheduled coverage pass over every team and logs escalated
// findings so missed breaks surface without anyone asking for a report.
type Sweeper struct {
	cron     *cron.Cron
	reporter Reporter
	teams    TeamLister
	logger   zerolog.Logger
}

func New(reporter Reporter, teams TeamLister, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		reporter: reporter,
		teams:    teams,
		logger:   logger,
	}
}

// Start registers the sweep on the given cron spec and starts the scheduler.
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Run(context.Background(), time.Now()) }); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Run sweeps every team once for the given day. Individual team failures are
// logged and skipped so one bad team cannot starve the rest.
func (s *Sweeper) Run(ctx context.Context, day time.Time) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	offset := 0
	const pageSize = 100
	for {
		teams, total, err := s.teams.ListTeams(ctx, pageSize, offset)
		if err != nil {
			s.logger.Error().Err(err).Msg("coverage sweep: listing teams")
			return
		}
		for _, team := range teams {
			s.sweepTeam(ctx, team, day)
		}
		offset += pageSize
		if offset >= total || len(teams) == 0 {
			break
		}
	}
}

func (s *Sweeper) sweepTeam(ctx context.Context, team *roster.Team, day time.Time) {
	report, err := s.reporter.TeamReport(ctx, team.ID, day)
	if err != nil {
		s.logger.Error().Err(err).
			Str("team_id", team.ID.String()).
			Msg("coverage sweep: team report failed")
		return
	}

	for _, member := range report.Members {
		for _, w := range member.Warnings {
			evt := s.logger.Info()
			switch w.Severity {
			case coverage.SeverityError:
				evt = s.logger.Error()
			case coverage.SeverityWarning:
				evt = s.logger.Warn()
			}
			evt.
				Str("team", team.Name).
				Str("staff_id", member.StaffID.String()).
				Str("kind", string(w.Kind)).
				Str("date", report.Date).
				Msg(w.Message)
		}
	}
	for _, w := range report.TeamWarnings {
		s.logger.Warn().
			Str("team", team.Name).
			Str("slot", w.SlotLabel).
			Str("date", report.Date).
			Msg(w.Message)
	}
}
