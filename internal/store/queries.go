package store

// SQL query constants organized by entity.
// PostgresStore methods reference these constants.

// Snapshot queries.
const (
	queryGetSnapshot = `
		SELECT updated_at, product_ids
		FROM snapshots
		WHERE id = 1`

	queryPutSnapshot = `
		INSERT INTO snapshots (id, updated_at, product_ids)
		VALUES (1, @updated_at, @product_ids)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			product_ids = EXCLUDED.product_ids`
)

// Cursor queries.
const (
	queryGetCursor = `
		SELECT updated_at, latest_product_id
		FROM cursors
		WHERE id = 1`

	queryPutCursor = `
		INSERT INTO cursors (id, updated_at, latest_product_id)
		VALUES (1, @updated_at, @latest_product_id)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = EXCLUDED.updated_at,
			latest_product_id = EXCLUDED.latest_product_id`
)

// Run log queries.
const (
	queryUpsertRunLog = `
		INSERT INTO run_logs (key, run_id, created_at)
		VALUES (@key, @run_id, @created_at)
		ON CONFLICT (key) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			created_at = EXCLUDED.created_at`

	queryDeleteRunLogEntries = `
		DELETE FROM run_log_entries WHERE log_key = $1`

	queryGetRunLog = `
		SELECT key, run_id, created_at
		FROM run_logs
		WHERE key = $1`

	queryListRunLogs = `
		SELECT key, run_id, created_at
		FROM run_logs
		ORDER BY created_at DESC, key DESC
		LIMIT $1`

	queryRunLogEntries = `
		SELECT log_key, product_id, tweet_id, error
		FROM run_log_entries
		WHERE log_key = ANY($1)
		ORDER BY log_key, position`
)

var runLogEntryColumns = []string{"log_key", "position", "product_id", "tweet_id", "error"}
