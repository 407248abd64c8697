package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Storage keys of the two ledgers.
const (
	ProductsKey = "tasks"
	SoldKey     = "soldTasks"
)

func encodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func decodeList[T any](key string, blob []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}
