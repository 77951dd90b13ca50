package postgres

import (
	"fmt"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEpochRow scans (id, lower_bound). Compatible with both sql.Row and sql.Rows.
func scanEpochRow(row scanner) (epoch.Epoch, error) {
	var e epoch.Epoch
	if err := row.Scan(&e.ID, &e.LowerBound); err != nil {
		return epoch.Epoch{}, err
	}
	e.LowerBound = e.LowerBound.UTC()
	return e, nil
}

// scanCounterRow scans (id, epoch_id, count). The column is BIGINT with a
// non-negative check, so a negative value means the row was edited by hand.
func scanCounterRow(row scanner) (epoch.Counter, error) {
	var c epoch.Counter
	var count int64
	if err := row.Scan(&c.ID, &c.EpochID, &count); err != nil {
		return epoch.Counter{}, err
	}
	if count < 0 {
		return epoch.Counter{}, fmt.Errorf("counter %d has negative count %d", c.ID, count)
	}
	c.Count = uint64(count)
	return c, nil
}
