// Package store defines the document-store contract the core runs against:
// named collections of loosely-typed documents with atomic field increments,
// filtered queries and snapshot subscriptions. Production uses Cloud
// Firestore; tests and local development use the in-memory implementation.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrDocNotFound is returned by Get, Update, Increment and UpdateIf when the
// addressed document does not exist.
var ErrDocNotFound = errors.New("store: document not found")

// Doc is one stored document. Data values follow the Firestore type model:
// string, bool, int64, float64, time.Time, []interface{} and nested
// map[string]interface{}.
type Doc struct {
	ID   string
	Data map[string]interface{}
}

// Filter is a single field predicate. Op is one of "==", "<", "<=", ">",
// ">=", "array-contains".
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Order sorts query results by one field.
type Order struct {
	Field string
	Desc  bool
}

// Query combines filters, ordering and a result cap.
type Query struct {
	Filters []Filter
	OrderBy []Order
	Limit   int
}

// EventKind classifies a change delivered by Subscribe.
type EventKind int

const (
	EventAdded EventKind = iota
	EventModified
	EventRemoved
)

// Event is one change to a document matching a subscription.
type Event struct {
	Kind EventKind
	Doc  Doc
}

// IncrementValue marks a field for an atomic add when used as a value in
// Update or Batch.Update maps, the way the remote store's increment sentinel
// works. The field is created at Delta when absent.
type IncrementValue struct {
	Delta int64
}

// Inc builds an IncrementValue.
func Inc(delta int64) IncrementValue {
	return IncrementValue{Delta: delta}
}

// Batch accumulates writes that commit atomically.
type Batch interface {
	Set(collection, id string, data map[string]interface{})
	Update(collection, id string, fields map[string]interface{})
	Commit(ctx context.Context) error
}

// Store is the document store seen by repositories. Collection names may be
// slash-separated paths into subcollections, e.g.
// "conversations/<id>/messages". Field names in Update and Increment may be
// dot-separated paths into nested maps, e.g. "unreadCounts.<uid>".
type Store interface {
	Get(ctx context.Context, collection, id string) (map[string]interface{}, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	// UpdateIf applies fields only if the document's field currently equals
	// expect. It reports whether the update was applied. The comparison and
	// the write are one atomic step.
	UpdateIf(ctx context.Context, collection, id, field string, expect interface{}, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, collection, id string) error
	// Increment atomically adds delta to a numeric field, creating the field
	// at delta when absent. The document itself must exist.
	Increment(ctx context.Context, collection, id, field string, delta int64) error
	Query(ctx context.Context, collection string, q Query) ([]Doc, error)
	// Subscribe streams changes for documents matching q until ctx is done.
	Subscribe(ctx context.Context, collection string, q Query) (<-chan Event, error)
	Batch() Batch
}

// Typed accessors for document data. Missing or mistyped fields yield zero
// values; numeric fields tolerate both int64 and float64 encodings.

func Str(data map[string]interface{}, field string) string {
	s, _ := data[field].(string)
	return s
}

func Bool(data map[string]interface{}, field string) bool {
	b, _ := data[field].(bool)
	return b
}

func Int(data map[string]interface{}, field string) int64 {
	switch v := data[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func Float(data map[string]interface{}, field string) float64 {
	switch v := data[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func Time(data map[string]interface{}, field string) time.Time {
	t, _ := data[field].(time.Time)
	return t
}

func StrSlice(data map[string]interface{}, field string) []string {
	raw, ok := data[field].([]interface{})
	if !ok {
		if typed, ok := data[field].([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func IntMap(data map[string]interface{}, field string) map[string]int64 {
	raw, ok := data[field].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]int64, len(raw))
	for k := range raw {
		out[k] = Int(raw, k)
	}
	return out
}

func BoolMap(data map[string]interface{}, field string) map[string]bool {
	raw, ok := data[field].(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for k := range raw {
		b, _ := raw[k].(bool)
		out[k] = b
	}
	return out
}
