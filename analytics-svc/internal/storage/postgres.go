package storage

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

// RestaurantNames resolves display names from the catalog tables.
type RestaurantNames struct {
	DB *sql.DB
}

func NewRestaurantNames(db *sql.DB) *RestaurantNames {
	return &RestaurantNames{DB: db}
}

func (r *RestaurantNames) Names(ctx context.Context, ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}

	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM restaurants WHERE id = ANY($1)", pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
