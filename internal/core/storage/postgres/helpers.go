package postgres

import (
	"fmt"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	"github.com/lib/pq"
)

// summaryArrays splits station summaries into the parallel arrays bound by queryInsertSummaries.
// Decimals travel as text so numeric precision is decided by the column type.
func summaryArrays(stations []v1.StationSummary) (names, mins, maxs, means, counts interface{}) {
	n := make([]string, len(stations))
	lo := make([]string, len(stations))
	hi := make([]string, len(stations))
	avg := make([]string, len(stations))
	c := make([]int64, len(stations))
	for i, s := range stations {
		n[i] = s.Station
		lo[i] = s.Min.StringFixed(1)
		hi[i] = s.Max.StringFixed(1)
		avg[i] = s.Mean.StringFixed(1)
		c[i] = s.Count
	}
	return pq.Array(n), pq.Array(lo), pq.Array(hi), pq.Array(avg), pq.Array(c)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRunRow scans a runs row. Compatible with both sql.Row and sql.Rows.
func scanRunRow(row scanner) (*v1.Run, error) {
	var run v1.Run
	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.CreatedAt,
		&run.Records,
		&run.Skipped,
		&run.ElapsedMS,
		&run.StationCount,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	return &run, nil
}

func scanSummaryRow(row scanner) (v1.StationSummary, error) {
	var s v1.StationSummary
	if err := row.Scan(&s.Station, &s.Min, &s.Max, &s.Mean, &s.Count); err != nil {
		return v1.StationSummary{}, fmt.Errorf("failed to scan summary row: %w", err)
	}
	return s, nil
}
