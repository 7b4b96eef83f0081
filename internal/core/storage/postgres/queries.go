package postgres

// SQL queries for run storage

const (
	// queryInsertRun returns no rows (sql.ErrNoRows) when the id already exists.
	queryInsertRun = `
		INSERT INTO runs (
			id, source, created_at, records, skipped, elapsed_ms, station_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`

	// queryInsertSummaries writes all stations of a run in one statement from parallel arrays.
	queryInsertSummaries = `
		INSERT INTO run_summaries (run_id, station, min_value, max_value, mean_value, record_count)
		SELECT $1, s.station, s.min_value, s.max_value, s.mean_value, s.record_count
		FROM unnest($2::text[], $3::numeric[], $4::numeric[], $5::numeric[], $6::bigint[])
			AS s(station, min_value, max_value, mean_value, record_count)
	`

	queryGetRun = `
		SELECT id, source, created_at, records, skipped, elapsed_ms, station_count
		FROM runs
		WHERE id = $1
	`

	// queryGetSummaries orders by raw bytes so results match the engine's key order.
	queryGetSummaries = `
		SELECT station, min_value, max_value, mean_value, record_count
		FROM run_summaries
		WHERE run_id = $1
		ORDER BY station COLLATE "C" ASC
	`

	queryListRuns = `
		SELECT id, source, created_at, records, skipped, elapsed_ms, station_count
		FROM runs
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`
)
