package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Validate checks the structure of a decoded payload. It returns nil when
// the payload can be restored, or a *ValidationError naming the problem.
// Row contents are not inspected.
func Validate(payload any) error {
	object, ok := payload.(map[string]any)
	if !ok {
		return invalid("Payload is not an object")
	}

	if version, ok := numberValue(object["version"]); !ok || version != Version {
		return invalid("Unsupported backup version: %s", describeValue(object["version"]))
	}

	data, ok := object["data"].(map[string]any)
	if !ok {
		return invalid("Missing 'data' field")
	}

	for _, table := range InsertOrder {
		value, present := data[table.Key]
		if !present || value == nil {
			continue
		}
		if _, ok := value.([]any); !ok {
			return invalid("data.%s must be an array, got %s", table.Key, typeName(value))
		}
	}
	return nil
}

// Decode parses raw JSON into a snapshot. Integral numbers stay integers so
// primary keys and counters survive a round trip unchanged. Only table keys
// present in the payload appear in Data; a null table decodes as empty.
func Decode(raw []byte) (*Snapshot, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, invalid("Invalid JSON: %v", err)
	}
	if err := Validate(payload); err != nil {
		return nil, err
	}

	object := payload.(map[string]any)
	data := object["data"].(map[string]any)
	exportedAt, _ := object["exportedAt"].(string)

	snapshot := &Snapshot{
		Version:    Version,
		ExportedAt: exportedAt,
		Data:       make(map[string][]Row, len(InsertOrder)),
	}
	for _, table := range InsertOrder {
		entry, present := data[table.Key]
		if !present {
			continue
		}
		items, _ := entry.([]any)
		rows := make([]Row, 0, len(items))
		for i, item := range items {
			fields, ok := item.(map[string]any)
			if !ok {
				return nil, invalid("data.%s[%d] must be an object, got %s", table.Key, i, typeName(item))
			}
			row := make(Row, len(fields))
			for column, value := range fields {
				normalized, err := normalizeValue(value)
				if err != nil {
					return nil, invalid("data.%s[%d].%s: %v", table.Key, i, column, err)
				}
				row[column] = normalized
			}
			rows = append(rows, row)
		}
		snapshot.Data[table.Key] = rows
	}
	return snapshot, nil
}

func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(encoded), nil
	default:
		return v, nil
	}
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func describeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "undefined"
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func typeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case []any:
		return "array"
	default:
		return "object"
	}
}
