package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used by tests and local development. A
// single mutex serializes all writes, which gives it the same per-document
// atomicity guarantees the remote store offers for increments and
// conditional updates.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{}
	subs []*memSub
}

type memSub struct {
	collection string
	query      Query
	ctx        context.Context
	ch         chan Event
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]map[string]map[string]interface{})}
}

func (m *MemStore) collection(name string) map[string]map[string]interface{} {
	col, ok := m.data[name]
	if !ok {
		col = make(map[string]map[string]interface{})
		m.data[name] = col
	}
	return col
}

func (m *MemStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.data[collection][id]
	if !ok {
		return nil, ErrDocNotFound
	}
	return deepCopy(doc), nil
}

func (m *MemStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(collection, id, data)
	return nil
}

func (m *MemStore) setLocked(collection, id string, data map[string]interface{}) {
	col := m.collection(collection)
	_, existed := col[id]
	col[id] = deepCopy(data)
	kind := EventAdded
	if existed {
		kind = EventModified
	}
	m.notifyLocked(collection, id, kind)
}

func (m *MemStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.setLocked(collection, id, data)
	return id, nil
}

func (m *MemStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(collection, id, fields)
}

func (m *MemStore) updateLocked(collection, id string, fields map[string]interface{}) error {
	doc, ok := m.data[collection][id]
	if !ok {
		return ErrDocNotFound
	}
	for path, value := range fields {
		if inc, ok := value.(IncrementValue); ok {
			if err := m.incrementLocked(doc, path, inc.Delta); err != nil {
				return err
			}
			continue
		}
		setPath(doc, path, deepCopyValue(value))
	}
	m.notifyLocked(collection, id, EventModified)
	return nil
}

func (m *MemStore) incrementLocked(doc map[string]interface{}, field string, delta int64) error {
	current, found := getPath(doc, field)
	if !found {
		setPath(doc, field, delta)
		return nil
	}
	switch v := current.(type) {
	case int64:
		setPath(doc, field, v+delta)
	case int:
		setPath(doc, field, int64(v)+delta)
	case float64:
		setPath(doc, field, v+float64(delta))
	default:
		return fmt.Errorf("store: field %q is not numeric", field)
	}
	return nil
}

func (m *MemStore) UpdateIf(ctx context.Context, collection, id, field string, expect interface{}, fields map[string]interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.data[collection][id]
	if !ok {
		return false, ErrDocNotFound
	}
	current, _ := getPath(doc, field)
	if !reflect.DeepEqual(current, expect) {
		return false, nil
	}
	if err := m.updateLocked(collection, id, fields); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.data[collection]
	if !ok {
		return nil
	}
	if _, ok := col[id]; !ok {
		return nil
	}
	m.notifyLocked(collection, id, EventRemoved)
	delete(col, id)
	return nil
}

func (m *MemStore) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.data[collection][id]
	if !ok {
		return ErrDocNotFound
	}
	if err := m.incrementLocked(doc, field, delta); err != nil {
		return err
	}
	m.notifyLocked(collection, id, EventModified)
	return nil
}

func (m *MemStore) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []Doc
	for id, data := range m.data[collection] {
		if matches(data, q.Filters) {
			docs = append(docs, Doc{ID: id, Data: deepCopy(data)})
		}
	}
	sortDocs(docs, q.OrderBy)
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (m *MemStore) Subscribe(ctx context.Context, collection string, q Query) (<-chan Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := &memSub{collection: collection, query: q, ctx: ctx, ch: make(chan Event, 64)}
	m.subs = append(m.subs, sub)
	// Seed with the current matching set, the way remote snapshots open.
	for id, data := range m.data[collection] {
		if matches(data, q.Filters) {
			sub.ch <- Event{Kind: EventAdded, Doc: Doc{ID: id, Data: deepCopy(data)}}
		}
	}
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s == sub {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				close(sub.ch)
				break
			}
		}
	}()
	return sub.ch, nil
}

func (m *MemStore) notifyLocked(collection, id string, kind EventKind) {
	doc := m.data[collection][id]
	for _, sub := range m.subs {
		if sub.collection != collection {
			continue
		}
		if kind != EventRemoved && !matches(doc, sub.query.Filters) {
			continue
		}
		select {
		case sub.ch <- Event{Kind: kind, Doc: Doc{ID: id, Data: deepCopy(doc)}}:
		default:
			// Slow consumer: drop rather than block writers.
		}
	}
}

// Batch returns a write batch that applies under one lock acquisition.
type memBatch struct {
	store *MemStore
	ops   []func() error
}

func (m *MemStore) Batch() Batch {
	return &memBatch{store: m}
}

func (b *memBatch) Set(collection, id string, data map[string]interface{}) {
	data = deepCopy(data)
	b.ops = append(b.ops, func() error {
		b.store.setLocked(collection, id, data)
		return nil
	})
}

func (b *memBatch) Update(collection, id string, fields map[string]interface{}) {
	fields = deepCopy(fields)
	b.ops = append(b.ops, func() error {
		return b.store.updateLocked(collection, id, fields)
	})
}

func (b *memBatch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, op := range b.ops {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}

func matches(data map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, _ := getPath(data, f.Field)
		switch f.Op {
		case "==":
			if !reflect.DeepEqual(value, f.Value) {
				return false
			}
		case "array-contains":
			found := false
			switch arr := value.(type) {
			case []interface{}:
				for _, v := range arr {
					if reflect.DeepEqual(v, f.Value) {
						found = true
						break
					}
				}
			case []string:
				want, _ := f.Value.(string)
				for _, v := range arr {
					if v == want {
						found = true
						break
					}
				}
			}
			if !found {
				return false
			}
		case "<", "<=", ">", ">=":
			c, ok := compareValues(value, f.Value)
			if !ok {
				return false
			}
			switch f.Op {
			case "<":
				if c >= 0 {
					return false
				}
			case "<=":
				if c > 0 {
					return false
				}
			case ">":
				if c <= 0 {
					return false
				}
			case ">=":
				if c < 0 {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func sortDocs(docs []Doc, orderBy []Order) {
	if len(orderBy) == 0 {
		sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
		return
	}
	sort.Slice(docs, func(i, j int) bool {
		for _, o := range orderBy {
			a, _ := getPath(docs[i].Data, o.Field)
			b, _ := getPath(docs[j].Data, o.Field)
			c, ok := compareValues(a, b)
			if !ok || c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return docs[i].ID < docs[j].ID
	})
}

func compareValues(a, b interface{}) (int, bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case av.Before(bv):
			return -1, true
		case av.After(bv):
			return 1, true
		}
		return 0, true
	default:
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if !aok || !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// getPath resolves a dot-separated field path inside nested maps.
func getPath(data map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		if i == len(parts)-1 {
			v, ok := current[part]
			return v, ok
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// setPath writes a dot-separated field path, creating intermediate maps.
func setPath(data map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}
}

func deepCopy(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopy(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
