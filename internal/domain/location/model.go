package location

import (
	"time"

	"github.com/google/uuid"
)

// Location maps to the location table. Operating hours are stored as minutes
// from midnight; the slot grid is derived, never stored.
type Location struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	OpenMinute  int       `db:"open_minute" json:"open_minute"`
	CloseMinute int       `db:"close_minute" json:"close_minute"`
	SlotMinutes int       `db:"slot_minutes" json:"slot_minutes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
