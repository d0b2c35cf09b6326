package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrTeamNotFound  = errors.New("team not found")
)

type StaffRepository interface {
	Create(ctx context.Context, s *StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error)
	Update(ctx context.Context, s *StaffMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*StaffMember, int, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*StaffMember, error)
}

type TeamRepository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Team, int, error)
}
