// Package repo layers typed entity access over the generic table layer.
// This file holds the declarative field↔column mapping tables: one table per
// entity generates both directions mechanically, so the two mappings cannot
// drift apart.
package repo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlaseng/fieldbook/internal/engine"
	"github.com/atlaseng/fieldbook/pkg/types"
)

// fieldKind tells the mapper how a value crosses the row boundary.
type fieldKind int

const (
	kindText   fieldKind = iota
	kindNumber           // REAL or INTEGER column.
	kindBool             // INTEGER 0/1 column.
	kindJSON             // TEXT column holding a serialized object or array.
)

// fieldMapping binds one application field to one engine column.
type fieldMapping struct {
	field  string // Application field name (camelCase, the key-value side).
	column string // Engine column name (snake_case).
	kind   fieldKind
}

// EntityMapping maps one entity type onto its engine table.
type EntityMapping struct {
	Table  string
	fields []fieldMapping
}

// Entity mapping tables. Each drives both sync directions.
var (
	UserMapping = EntityMapping{
		Table: "users",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"name", "name", kindText},
			{"email", "email", kindText},
			{"phone", "phone", kindText},
			{"role", "role", kindText},
			{"avatar", "avatar", kindText},
		},
	}

	ProjectMapping = EntityMapping{
		Table: "projects",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"name", "name", kindText},
			{"code", "code", kindText},
			{"description", "description", kindText},
			{"location", "location", kindText},
			{"province", "province", kindText},
			{"client", "client", kindText},
			{"contractor", "contractor", kindText},
			{"subcontractor", "subcontractor", kindText},
			{"consultant", "consultant", kindText},
			{"engineer", "engineer", kindText},
			{"supervisor", "supervisor", kindText},
			{"contractNo", "contract_no", kindText},
			{"contractValue", "contract_value", kindNumber},
			{"currency", "currency", kindText},
			{"fundingSource", "funding_source", kindText},
			{"startDate", "start_date", kindText},
			{"endDate", "end_date", kindText},
			{"status", "status", kindText},
			{"progress", "progress", kindNumber},
			{"createdAt", "created_at", kindText},
			{"updatedAt", "updated_at", kindText},
			{"boq", "boq", kindJSON},
			{"rfis", "rfis", kindJSON},
			{"labTests", "lab_tests", kindJSON},
			{"schedule", "schedule", kindJSON},
			{"dailyReports", "daily_reports", kindJSON},
			{"documents", "documents", kindJSON},
			{"vehicles", "vehicles", kindJSON},
			{"materials", "materials", kindJSON},
			{"purchaseOrders", "purchase_orders", kindJSON},
			{"settings", "settings", kindJSON},
		},
	}

	MessageMapping = EntityMapping{
		Table: "messages",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"senderId", "sender_id", kindText},
			{"receiverId", "receiver_id", kindText},
			{"content", "content", kindText},
			{"timestamp", "timestamp", kindText},
			{"read", "read_status", kindBool},
			{"projectId", "project_id", kindText},
		},
	}

	BoqItemMapping = EntityMapping{
		Table: "boq_items",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"projectId", "project_id", kindText},
			{"itemNo", "item_no", kindText},
			{"description", "description", kindText},
			{"unit", "unit", kindText},
			{"quantity", "quantity", kindNumber},
			{"unitRate", "unit_rate", kindNumber},
			{"totalPrice", "total_price", kindNumber},
			{"executedQty", "executed_qty", kindNumber},
		},
	}

	RfiMapping = EntityMapping{
		Table: "rfis",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"projectId", "project_id", kindText},
			{"number", "number", kindText},
			{"title", "title", kindText},
			{"description", "description", kindText},
			{"status", "status", kindText},
			{"submittedDate", "submitted_date", kindText},
			{"responseDate", "response_date", kindText},
			{"respondedBy", "responded_by", kindText},
		},
	}

	LabTestMapping = EntityMapping{
		Table: "lab_tests",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"projectId", "project_id", kindText},
			{"testType", "test_type", kindText},
			{"material", "material", kindText},
			{"result", "result", kindText},
			{"testDate", "test_date", kindText},
			{"technician", "technician", kindText},
			{"notes", "notes", kindText},
		},
	}

	ScheduleTaskMapping = EntityMapping{
		Table: "schedule_tasks",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"projectId", "project_id", kindText},
			{"name", "name", kindText},
			{"startDate", "start_date", kindText},
			{"endDate", "end_date", kindText},
			{"progress", "progress", kindNumber},
			{"assignee", "assignee", kindText},
			{"dependsOn", "depends_on", kindJSON},
		},
	}

	DailyReportMapping = EntityMapping{
		Table: "daily_reports",
		fields: []fieldMapping{
			{"id", "id", kindText},
			{"projectId", "project_id", kindText},
			{"date", "date", kindText},
			{"weather", "weather", kindText},
			{"laborCount", "labor_count", kindNumber},
			{"equipmentCount", "equipment_count", kindNumber},
			{"workDescription", "work_description", kindText},
			{"notes", "notes", kindText},
		},
	}
)

// ToRow converts an entity into an engine record, renaming application
// fields to their column names. Fields absent from the serialized entity
// bind as NULL so INSERT OR REPLACE fully overwrites the row.
func (m EntityMapping) ToRow(entity any) (engine.Record, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %s entity: %v", types.ErrSerialization, m.Table, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: decoding %s entity: %v", types.ErrSerialization, m.Table, err)
	}

	rec := make(engine.Record, len(m.fields))
	for _, fm := range m.fields {
		v, ok := fields[fm.field]
		if !ok {
			rec[fm.column] = nil
			continue
		}
		rec[fm.column] = v
	}
	return rec, nil
}

// FromRow converts an engine record back to the application representation
// and decodes it into out, which must be a pointer to the entity struct.
// Only columns declared kindJSON are parsed as serialized JSON; text columns
// pass through as-is even when their content happens to look like JSON.
func (m EntityMapping) FromRow(rec engine.Record, out any) error {
	fields := make(map[string]any, len(m.fields))
	for _, fm := range m.fields {
		v, ok := rec[fm.column]
		if !ok || v == nil {
			continue
		}
		switch fm.kind {
		case kindBool:
			v = asBool(v)
		case kindJSON:
			decoded, err := decodeJSONColumn(v)
			if err != nil {
				return fmt.Errorf("%w: decoding %s.%s: %v", types.ErrSerialization, m.Table, fm.column, err)
			}
			if decoded == nil {
				continue
			}
			v = decoded
		}
		fields[fm.field] = v
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: encoding %s row: %v", types.ErrSerialization, m.Table, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decoding %s row: %v", types.ErrSerialization, m.Table, err)
	}
	return nil
}

// decodeJSONColumn parses the stored text of a kindJSON column. Values that
// are already structured (a record built by ToRow rather than read from the
// engine) pass through unchanged; empty text reads as absent.
func decodeJSONColumn(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// asBool interprets an INTEGER 0/1 column value.
func asBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int64:
		return val != 0
	case int:
		return val != 0
	case float64:
		return val != 0
	default:
		return false
	}
}
