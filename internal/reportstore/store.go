// Package reportstore persists a finished run's Report to Postgres, an
// ambient concern outside the core per spec.md §1. Adapted from
// internal/ledger/ledger.go's transactional insert shape; a simulation run
// that never configures a store just never calls Save.
package reportstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patientflow/edsim/internal/metrics"
)

// Store writes finished-run reports to Postgres.
type Store struct {
	db *sql.DB
}

// New wraps an already-opened database handle. The caller owns its
// lifecycle; Store never opens or closes the connection itself.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one persisted simulation run: the configuration that produced it
// (as opaque JSON, since config.Config's shape is a caller-side concern) and
// its resulting Report.
type Run struct {
	ID          uuid.UUID
	Label       string
	ConfigJSON  json.RawMessage
	Report      metrics.Report
	CreatedAt   time.Time
}

// EnsureSchema creates the reports table if it doesn't already exist. Called
// once at startup; cheap enough to run on every process boot.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_reports (
			id UUID PRIMARY KEY,
			label TEXT NOT NULL,
			config_json JSONB NOT NULL,
			avg_ed_los DOUBLE PRECISION,
			avg_ed_boarding DOUBLE PRECISION,
			avg_total_hospital_los DOUBLE PRECISION,
			cdu_discharge_rate DOUBLE PRECISION,
			cdu_avg_occupancy DOUBLE PRECISION,
			cdu_utilization DOUBLE PRECISION,
			inpatient_avg_occupancy DOUBLE PRECISION,
			inpatient_utilization DOUBLE PRECISION,
			pulley_avg_occupancy DOUBLE PRECISION,
			pulley_utilization DOUBLE PRECISION,
			avg_transfer_time_to_admit DOUBLE PRECISION,
			avg_ed_wait_for_transport DOUBLE PRECISION,
			imaging_tat_overall DOUBLE PRECISION,
			imaging_tat_critical DOUBLE PRECISION,
			imaging_tat_ed_cdu_origin DOUBLE PRECISION,
			avg_patient_satisfaction DOUBLE PRECISION,
			total_staff_cost TEXT,
			total_amenities_cost TEXT,
			total_ai_entertainment_cost TEXT,
			total_hospital_expenses TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("reportstore: ensure schema: %w", err)
	}
	return nil
}

// Save persists one run's report inside a single transaction, mirroring the
// ledger's lock-then-write-then-commit shape even though there is no
// concurrent mutation to guard against here — one row, one writer.
func (s *Store) Save(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reportstore: begin transaction: %w", err)
	}
	defer tx.Rollback()

	r := run.Report
	_, err = tx.ExecContext(ctx, `
		INSERT INTO simulation_reports (
			id, label, config_json,
			avg_ed_los, avg_ed_boarding, avg_total_hospital_los,
			cdu_discharge_rate, cdu_avg_occupancy, cdu_utilization,
			inpatient_avg_occupancy, inpatient_utilization,
			pulley_avg_occupancy, pulley_utilization,
			avg_transfer_time_to_admit, avg_ed_wait_for_transport,
			imaging_tat_overall, imaging_tat_critical, imaging_tat_ed_cdu_origin,
			avg_patient_satisfaction,
			total_staff_cost, total_amenities_cost, total_ai_entertainment_cost, total_hospital_expenses,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`,
		run.ID, run.Label, []byte(run.ConfigJSON),
		r.AvgEDLOS, r.AvgEDBoarding, r.AvgTotalHospitalLOS,
		r.CDUDischargeRate, r.CDUAvgOccupancy, r.CDUUtilization,
		r.InpatientAvgOccupancy, r.InpatientUtilization,
		r.PulleyAvgOccupancy, r.PulleyUtilization,
		r.AvgTransferTimeToAdmit, r.AvgEDWaitForTransport,
		r.ImagingTATOverall, r.ImagingTATCritical, r.ImagingTATEDCDUOrigin,
		r.AvgPatientSatisfaction,
		r.TotalStaffCost.String(), r.TotalAmenitiesCost.String(), r.TotalAIEntertainmentCost.String(), r.TotalHospitalExpenses.String(),
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("reportstore: insert report: %w", err)
	}

	for mode, count := range r.TransportCounts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO simulation_report_transport_counts (report_id, mode, count)
			VALUES ($1, $2, $3)`, run.ID, mode.String(), count); err != nil {
			return fmt.Errorf("reportstore: insert transport count %s: %w", mode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reportstore: commit: %w", err)
	}
	return nil
}

// EnsureTransportCountsSchema creates the side table for per-mode transport
// counts. Split from EnsureSchema because it references the parent table.
func (s *Store) EnsureTransportCountsSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_report_transport_counts (
			report_id UUID NOT NULL REFERENCES simulation_reports(id),
			mode TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (report_id, mode)
		)`)
	if err != nil {
		return fmt.Errorf("reportstore: ensure transport counts schema: %w", err)
	}
	return nil
}

// Get retrieves a persisted run's summary metrics by id. Transport counts
// are not reloaded; callers that need them query the side table directly.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	var configJSON []byte
	var r metrics.Report
	var staffCost, amenitiesCost, aiCost, totalCost string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, config_json,
			avg_ed_los, avg_ed_boarding, avg_total_hospital_los,
			cdu_discharge_rate, cdu_avg_occupancy, cdu_utilization,
			inpatient_avg_occupancy, inpatient_utilization,
			pulley_avg_occupancy, pulley_utilization,
			avg_transfer_time_to_admit, avg_ed_wait_for_transport,
			imaging_tat_overall, imaging_tat_critical, imaging_tat_ed_cdu_origin,
			avg_patient_satisfaction,
			total_staff_cost, total_amenities_cost, total_ai_entertainment_cost, total_hospital_expenses,
			created_at
		FROM simulation_reports WHERE id = $1`, id,
	).Scan(&run.ID, &run.Label, &configJSON,
		&r.AvgEDLOS, &r.AvgEDBoarding, &r.AvgTotalHospitalLOS,
		&r.CDUDischargeRate, &r.CDUAvgOccupancy, &r.CDUUtilization,
		&r.InpatientAvgOccupancy, &r.InpatientUtilization,
		&r.PulleyAvgOccupancy, &r.PulleyUtilization,
		&r.AvgTransferTimeToAdmit, &r.AvgEDWaitForTransport,
		&r.ImagingTATOverall, &r.ImagingTATCritical, &r.ImagingTATEDCDUOrigin,
		&r.AvgPatientSatisfaction,
		&staffCost, &amenitiesCost, &aiCost, &totalCost,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reportstore: run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("reportstore: get run: %w", err)
	}

	run.ConfigJSON = configJSON
	run.Report = r
	return &run, nil
}

// ListRecent returns the most recently created runs, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at FROM simulation_reports
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("reportstore: list recent: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Label, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("reportstore: scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
