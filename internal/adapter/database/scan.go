package database

import (
	"fmt"
	"time"

	"todoapi/internal/core/domain"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp scans a column into a UTC time. Drivers hand timestamps back as
// time.Time when they know the column type and as text otherwise, which is
// what sqlite does for RETURNING columns.
type Timestamp struct {
	Time *time.Time
}

func (ts Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts.Time = time.Time{}
		return nil
	case time.Time:
		*ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts Timestamp) parse(value string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			*ts.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as timestamp", value)
}

// ScanTodo reads the columns id, body, completed, created_at, updated_at in that order.
func ScanTodo(row RowScanner) (domain.Todo, error) {
	var todo domain.Todo

	err := row.Scan(
		&todo.ID,
		&todo.Body,
		&todo.Completed,
		Timestamp{Time: &todo.CreatedAt},
		Timestamp{Time: &todo.UpdatedAt},
	)
	if err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}
