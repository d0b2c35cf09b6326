package location

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, l *Location) error {
	if l.Name == "" {
		return fmt.Errorf("name is required")
	}
	applyDefaults(l)
	if _, err := scheduling.NewGrid(l.OpenMinute, l.CloseMinute, l.SlotMinutes); err != nil {
		return err
	}
	return s.repo.Create(ctx, l)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, l *Location) error {
	applyDefaults(l)
	if _, err := scheduling.NewGrid(l.OpenMinute, l.CloseMinute, l.SlotMinutes); err != nil {
		return err
	}
	return s.repo.Update(ctx, l)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Location, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// GridForLocation derives the slot grid from a location's stored operating
// hours. Satisfies the scheduling grid source.
func (s *Service) GridForLocation(ctx context.Context, id uuid.UUID) (*scheduling.Grid, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return scheduling.NewGrid(l.OpenMinute, l.CloseMinute, l.SlotMinutes)
}

func applyDefaults(l *Location) {
	if l.SlotMinutes == 0 {
		l.SlotMinutes = 30
	}
	if l.OpenMinute == 0 && l.CloseMinute == 0 {
		l.OpenMinute = 8 * 60
		l.CloseMinute = 18 * 60
	}
}
