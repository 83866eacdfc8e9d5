// Generic table access: uniform CRUD over named tables without per-entity
// boilerplate. Column lists for inserts and updates come from the record's
// own key set, validated against the live schema before any SQL is built.
package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/atlaseng/fieldbook/pkg/types"
)

// Record is one row keyed by column name. Object- and array-valued fields
// are JSON-encoded to text on write; reads return column values as stored,
// and the mapping layer decides which text columns hold serialized JSON.
type Record map[string]any

// Select builds a parameterized SELECT over the named table. An empty
// columns slice selects *; an empty where clause applies no filter.
func (e *Engine) Select(table string, columns []string, where string, args ...any) ([]Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return nil, types.ErrEngineUnavailable
	}
	if _, err := e.tableColumns(table); err != nil {
		return nil, err
	}

	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}
	query := fmt.Sprintf("SELECT %s FROM %s", cols, table)
	if where != "" {
		query += " WHERE " + where
	}
	return e.queryRecords(query, args...)
}

// Insert writes a record using INSERT OR REPLACE with the record's key set
// as the column list. Keys without a matching table column reject the whole
// record with ErrColumnMismatch before any SQL runs. The snapshot is
// persisted before Insert returns.
func (e *Engine) Insert(table string, rec Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return types.ErrEngineUnavailable
	}
	cols, vals, err := e.bindRecord(table, rec)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
	if _, err := e.db.Exec(query, vals...); err != nil {
		return fmt.Errorf("%w: %v", types.ErrQuery, err)
	}
	return e.persistSnapshotLocked()
}

// Update rewrites the matching rows with the record's fields. The same
// column-validation and JSON-encoding discipline as Insert applies. The
// snapshot is persisted before Update returns.
func (e *Engine) Update(table string, rec Record, where string, args ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return types.ErrEngineUnavailable
	}
	cols, vals, err := e.bindRecord(table, rec)
	if err != nil {
		return err
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(sets, ", "))
	if where != "" {
		query += " WHERE " + where
	}
	if _, err := e.db.Exec(query, append(vals, args...)...); err != nil {
		return fmt.Errorf("%w: %v", types.ErrQuery, err)
	}
	return e.persistSnapshotLocked()
}

// Delete removes the matching rows. The snapshot is persisted before Delete
// returns.
func (e *Engine) Delete(table string, where string, args ...any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return types.ErrEngineUnavailable
	}
	if _, err := e.tableColumns(table); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s", table)
	if where != "" {
		query += " WHERE " + where
	}
	if _, err := e.db.Exec(query, args...); err != nil {
		return fmt.Errorf("%w: %v", types.ErrQuery, err)
	}
	return e.persistSnapshotLocked()
}

// ExecuteQuery is the escape hatch for arbitrary SQL: joins, aggregates,
// subqueries. Engine errors are surfaced to the caller wrapped in ErrQuery
// with the driver's message intact.
func (e *Engine) ExecuteQuery(query string, args ...any) ([]Record, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.db == nil {
		return nil, types.ErrEngineUnavailable
	}
	return e.queryRecords(query, args...)
}

// bindRecord validates the record's keys against the table schema and
// returns the sorted column list with encoded values. The caller must hold
// e.mu.
func (e *Engine) bindRecord(table string, rec Record) ([]string, []any, error) {
	if len(rec) == 0 {
		return nil, nil, fmt.Errorf("%w: empty record for table %s", types.ErrQuery, table)
	}

	known, err := e.tableColumns(table)
	if err != nil {
		return nil, nil, err
	}
	knownSet := make(map[string]bool, len(known))
	for _, c := range known {
		knownSet[c] = true
	}

	cols := make([]string, 0, len(rec))
	var unknown []string
	for k := range rec {
		if !knownSet[k] {
			unknown = append(unknown, k)
			continue
		}
		cols = append(cols, k)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, nil, fmt.Errorf("%w: table %s has no columns %s",
			types.ErrColumnMismatch, table, strings.Join(unknown, ", "))
	}
	sort.Strings(cols)

	vals := make([]any, len(cols))
	for i, c := range cols {
		v, err := encodeValue(rec[c])
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", c, err)
		}
		vals[i] = v
	}
	return cols, vals, nil
}

// encodeValue prepares a record value for parameter binding. Objects and
// arrays become JSON text; booleans become 0/1 integers.
func encodeValue(v any) (any, error) {
	switch val := v.(type) {
	case nil, string, int, int64, float64, []byte:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding value: %v", types.ErrSerialization, err)
		}
		return string(raw), nil
	}
}

// queryRecords runs the query and hydrates each row into a Record. The
// caller must hold e.mu.
func (e *Engine) queryRecords(query string, args ...any) ([]Record, error) {
	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQuery, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQuery, err)
	}

	var out []Record
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrQuery, err)
		}

		rec := make(Record, len(cols))
		for i, c := range cols {
			rec[c] = decodeValue(raw[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQuery, err)
	}
	if out == nil {
		out = []Record{}
	}
	return out, nil
}

// decodeValue normalizes a scanned value: byte slices become strings.
// Text columns come back exactly as stored; a plain-text value that merely
// looks like JSON must not be reinterpreted, so no content sniffing happens
// here. Columns that do hold serialized JSON are decoded by the mapping
// layer, which knows each column's kind.
func decodeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
