package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	staff StaffRepository
	teams TeamRepository
}

func NewService(staff StaffRepository, teams TeamRepository) *Service {
	return &Service{staff: staff, teams: teams}
}

func (s *Service) CreateStaffMember(ctx context.Context, m *StaffMember) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Role == "" {
		m.Role = "clinician"
	}
	m.Active = true
	return s.staff.Create(ctx, m)
}

func (s *Service) GetStaffMember(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaffMember(ctx context.Context, m *StaffMember) error {
	return s.staff.Update(ctx, m)
}

func (s *Service) DeleteStaffMember(ctx context.Context, id uuid.UUID) error {
	return s.staff.Delete(ctx, id)
}

func (s *Service) ListStaff(ctx context.Context, limit, offset int) ([]*StaffMember, int, error) {
	return s.staff.List(ctx, limit, offset)
}

// ListTeamMembers returns the active members of a team, erroring when the
// team itself does not exist so callers can distinguish empty from unknown.
func (s *Service) ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*StaffMember, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.staff.ListByTeam(ctx, teamID)
}

func (s *Service) CreateTeam(ctx context.Context, t *Team) error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.teams.Create(ctx, t)
}

func (s *Service) GetTeam(ctx context.Context, id uuid.UUID) (*Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *Service) UpdateTeam(ctx context.Context, t *Team) error {
	return s.teams.Update(ctx, t)
}

func (s *Service) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return s.teams.Delete(ctx, id)
}

func (s *Service) ListTeams(ctx context.Context, limit, offset int) ([]*Team, int, error) {
	return s.teams.List(ctx, limit, offset)
}
