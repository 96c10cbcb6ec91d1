package service

import (
	"context"
	"fmt"
	"log/slog"

	"gameready/internal/analysis"
	"gameready/internal/logging"
	"gameready/internal/schedule"
	"gameready/internal/store"
	"gameready/internal/validate"
)

// ReportService handles athlete submissions
type ReportService struct {
	store  *store.DB
	logger *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(store *store.DB, logger *slog.Logger) *ReportService {
	return &ReportService{store: store, logger: logging.OrDiscard(logger)}
}

// SubmitResult is what an athlete sees after submitting
type SubmitResult struct {
	Report   store.Report
	Feedback string
	Limiter  analysis.Metric
	Strength analysis.Metric
}

// Submit validates a report, scores it and stores it. A second submission for
// the same date replaces the first.
func (s *ReportService) Submit(ctx context.Context, athleteID int64, in validate.ReportInput) (*SubmitResult, error) {
	metrics, date, err := validate.Report(in)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if user.Role != store.RoleAthlete {
		return nil, fmt.Errorf("user %d: %w", athleteID, ErrNotAthlete)
	}

	report := store.Report{
		AthleteID: athleteID,
		Date:      date,
		Metrics:   metrics,
		Score:     analysis.Score(metrics),
		Comments:  in.Comments,
	}
	if err := s.store.UpsertReport(ctx, &report); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}

	s.logger.Info("report submitted",
		logging.FieldAthleteID, athleteID,
		logging.FieldDate, schedule.DateKey(date),
		logging.FieldScore, report.Score,
	)

	return &SubmitResult{
		Report:   report,
		Feedback: analysis.Feedback(metrics, report.Score),
		Limiter:  analysis.PrimaryLimiter(metrics),
		Strength: analysis.Highest(metrics),
	}, nil
}

// SetAvailability records an athlete's availability status
func (s *ReportService) SetAvailability(ctx context.Context, athleteID int64, in validate.AvailabilityInput) error {
	status, err := validate.Availability(in)
	if err != nil {
		return err
	}
	if err := s.store.SetAvailability(ctx, athleteID, status, in.Note); err != nil {
		return err
	}
	s.logger.Info("availability updated",
		logging.FieldAthleteID, athleteID,
		"status", string(status),
	)
	return nil
}
