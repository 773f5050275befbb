package quota

import (
	"time"

	id "edumatch/pkg/domain"
)

// Quota is an institution's authorized seat count. It gates future mints
// only: lowering a quota never invalidates seats that were already minted.
type Quota struct {
	Institution id.InstitutionID `json:"institution_id"`
	SeatCount   int              `json:"seat_count"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
