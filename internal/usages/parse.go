package usages

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoData is returned when the decoded document carries no usage pages at
// all (a JSON null or an object without the usagePages key). Callers treat
// it like any other deserialization failure.
var ErrNoData = errors.New("usage tables: decoded document contains no data")

// Parse deserializes the structured attachment bytes into a UsageTables.
// It never returns the Empty sentinel; converting failures into Empty plus
// a diagnostic is the caller's job.
func Parse(data []byte) (UsageTables, error) {
	var raw *UsageTables
	if err := json.Unmarshal(data, &raw); err != nil {
		return UsageTables{}, fmt.Errorf("decode usage tables: %w", err)
	}
	if raw == nil || raw.Pages == nil {
		return UsageTables{}, ErrNoData
	}
	if raw.Version == emptyVersion {
		return UsageTables{}, fmt.Errorf("decode usage tables: reserved version marker")
	}
	return *raw, nil
}
