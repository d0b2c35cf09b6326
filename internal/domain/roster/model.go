package roster

import (
	"time"

	"github.com/google/uuid"
)

// StaffMember maps to the staff_member table.
type StaffMember struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Role      string     `db:"role" json:"role"`
	TeamID    *uuid.UUID `db:"team_id" json:"team_id,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Team maps to the team table. Teams exist for break-coverage scoring; the
// scheduler does not own any richer org structure.
type Team struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	LeadID    *uuid.UUID `db:"lead_id" json:"lead_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
