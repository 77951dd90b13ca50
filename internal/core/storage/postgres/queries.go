package postgres

// SQL queries for epoch and counter storage.
// Timestamps are TIMESTAMPTZ and always bound as UTC.

const (
	// queryListEpochsInRange is half-open: an epoch starting exactly at
	// the upper bound belongs to the next bucket.
	queryListEpochsInRange = `
		SELECT id, lower_bound
		FROM epochs
		WHERE lower_bound >= $1
		  AND lower_bound < $2
		ORDER BY lower_bound ASC, id ASC
	`

	queryGetEpoch = `
		SELECT id, lower_bound
		FROM epochs
		WHERE id = $1
	`

	// queryInsertEpoch returns no rows (sql.ErrNoRows) when another writer
	// already created the bucket.
	queryInsertEpoch = `
		INSERT INTO epochs (lower_bound)
		VALUES ($1)
		ON CONFLICT (lower_bound) DO NOTHING
		RETURNING id, lower_bound
	`

	queryGetCounterByEpoch = `
		SELECT id, epoch_id, count
		FROM got_dadded
		WHERE epoch_id = $1
		ORDER BY id ASC
		LIMIT 1
	`

	queryGetCounter = `
		SELECT id, epoch_id, count
		FROM got_dadded
		WHERE id = $1
	`

	queryInsertCounter = `
		INSERT INTO got_dadded (epoch_id, count)
		VALUES ($1, 0)
		ON CONFLICT (epoch_id) DO NOTHING
		RETURNING id, epoch_id, count
	`

	queryUpdateCounterCount = `
		UPDATE got_dadded
		SET count = $1
		WHERE id = $2
		RETURNING id, epoch_id, count
	`
)
