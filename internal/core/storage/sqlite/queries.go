package sqlite

// SQL queries for epoch and counter storage.
// lower_bound is stored as unix milliseconds (UTC). Placeholders are
// positional '?' and appear in argument order.
const (
	queryListEpochsInRange = `
		SELECT id, lower_bound
		FROM epochs
		WHERE lower_bound >= ?
		  AND lower_bound < ?
		ORDER BY lower_bound ASC, id ASC
	`

	queryGetEpoch = `
		SELECT id, lower_bound
		FROM epochs
		WHERE id = ?
	`

	queryInsertEpoch = `
		INSERT INTO epochs (lower_bound)
		VALUES (?)
		ON CONFLICT (lower_bound) DO NOTHING
		RETURNING id, lower_bound
	`

	queryGetCounterByEpoch = `
		SELECT id, epoch_id, count
		FROM got_dadded
		WHERE epoch_id = ?
		ORDER BY id ASC
		LIMIT 1
	`

	queryGetCounter = `
		SELECT id, epoch_id, count
		FROM got_dadded
		WHERE id = ?
	`

	queryInsertCounter = `
		INSERT INTO got_dadded (epoch_id, count)
		VALUES (?, 0)
		ON CONFLICT (epoch_id) DO NOTHING
		RETURNING id, epoch_id, count
	`

	queryUpdateCounterCount = `
		UPDATE got_dadded
		SET count = ?
		WHERE id = ?
		RETURNING id, epoch_id, count
	`
)
