package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/codewithmirza/datanyx/repository"
)

// RetentionJob removes calculation records older than the retention window.
type RetentionJob struct {
	repo      repository.CalculationRepository
	retention time.Duration
	clock     Clock
	log       zerolog.Logger
}

func NewRetentionJob(
	repo repository.CalculationRepository,
	retention time.Duration,
	clock Clock,
	log zerolog.Logger,
) *RetentionJob {
	if clock == nil {
		clock = time.Now
	}
	return &RetentionJob{
		repo:      repo,
		retention: retention,
		clock:     clock,
		log:       log.With().Str("job", "calculation_retention").Logger(),
	}
}

func (j *RetentionJob) Run() error {
	cutoff := j.clock().Add(-j.retention)

	deleted, err := j.repo.DeleteBefore(cutoff)
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete old calculations")
		return err
	}

	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("Cleaned up old calculations")
	}
	return nil
}

func (j *RetentionJob) Name() string {
	return "calculation_retention"
}
