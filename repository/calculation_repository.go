package repository

import (
	"time"

	"github.com/codewithmirza/datanyx/domain"
)

// CalculationRepository stores assessed profiles for the history view.
type CalculationRepository interface {
	Save(record domain.CalculationRecord) error
	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]domain.CalculationRecord, error)
	// DeleteBefore removes records created before cutoff and reports how many.
	DeleteBefore(cutoff time.Time) (int64, error)
}
