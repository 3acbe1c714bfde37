package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

const reportsSchema = `
create table if not exists blood_reports (
    id             uuid primary key,
    created_at     timestamptz not null,
    patient_name   text not null,
    patient_age    integer not null,
    patient_gender text not null,
    blood_group    text not null,
    markers        text not null,
    no_markers     boolean not null,
    document       bytea
)`

// PostgresReportArchive хранит выданные отчёты в Postgres.
// Ожидает *sql.DB, открытый через драйвер pgx.
type PostgresReportArchive struct{ DB *sql.DB }

func NewPostgresReportArchive(db *sql.DB) *PostgresReportArchive {
	return &PostgresReportArchive{DB: db}
}

// Migrate создаёт таблицу, если её ещё нет.
func (a *PostgresReportArchive) Migrate(ctx context.Context) error {
	if _, err := a.DB.ExecContext(ctx, reportsSchema); err != nil {
		return fmt.Errorf("migrate blood_reports: %w", err)
	}
	return nil
}

// Store сохраняет отчёт и PDF.
func (a *PostgresReportArchive) Store(ctx context.Context, report *entity.Report, document []byte) error {
	const q = `
insert into blood_reports
    (id, created_at, patient_name, patient_age, patient_gender, blood_group, markers, no_markers, document)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
on conflict (id) do nothing`

	c := report.Classification
	_, err := a.DB.ExecContext(ctx, q,
		report.ID.String(),
		report.GeneratedAt,
		report.Patient.Name,
		report.Patient.Age,
		string(report.Patient.Gender),
		string(c.Group),
		strings.Join(c.Markers.Labels(), ","),
		c.NoMarkers,
		document,
	)
	if err != nil {
		return fmt.Errorf("insert blood_report: %w", err)
	}
	return nil
}

var _ port.ReportArchive = (*PostgresReportArchive)(nil)
