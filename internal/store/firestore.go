package store

import (
	"context"
	"fmt"
	"reflect"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore adapts a Cloud Firestore client to the Store contract.
// Collection names map straight onto Firestore collection paths and field
// names onto dot-separated field paths, so the documents stay compatible
// with the data the mobile clients already wrote.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(collection, id string) *firestore.DocumentRef {
	return s.client.Collection(collection).Doc(id)
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	snap, err := s.doc(collection, id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreErr(err)
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, data map[string]interface{}) error {
	_, err := s.doc(collection, id).Set(ctx, data)
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, data)
	if err != nil {
		return "", mapFirestoreErr(err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	_, err := s.doc(collection, id).Update(ctx, toUpdates(fields))
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) UpdateIf(ctx context.Context, collection, id, field string, expect interface{}, fields map[string]interface{}) (bool, error) {
	applied := false
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(s.doc(collection, id))
		if err != nil {
			return err
		}
		current, err := snap.DataAt(field)
		if err != nil {
			current = nil
		}
		if !reflect.DeepEqual(current, expect) {
			return nil
		}
		if err := tx.Update(s.doc(collection, id), toUpdates(fields)); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, mapFirestoreErr(err)
	}
	return applied, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.doc(collection, id).Delete(ctx)
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Increment(ctx context.Context, collection, id, field string, delta int64) error {
	_, err := s.doc(collection, id).Update(ctx, []firestore.Update{
		{Path: field, Value: firestore.Increment(delta)},
	})
	return mapFirestoreErr(err)
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, q Query) ([]Doc, error) {
	it := s.buildQuery(collection, q).Documents(ctx)
	defer it.Stop()

	var docs []Doc
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapFirestoreErr(err)
		}
		docs = append(docs, Doc{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Subscribe(ctx context.Context, collection string, q Query) (<-chan Event, error) {
	snapshots := s.buildQuery(collection, q).Snapshots(ctx)
	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				return
			}
			for _, change := range snap.Changes {
				event := Event{Doc: Doc{ID: change.Doc.Ref.ID, Data: change.Doc.Data()}}
				switch change.Kind {
				case firestore.DocumentAdded:
					event.Kind = EventAdded
				case firestore.DocumentModified:
					event.Kind = EventModified
				case firestore.DocumentRemoved:
					event.Kind = EventRemoved
				}
				select {
				case ch <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (s *FirestoreStore) buildQuery(collection string, q Query) firestore.Query {
	query := s.client.Collection(collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, f.Op, f.Value)
	}
	for _, o := range q.OrderBy {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(o.Field, dir)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return query
}

type firestoreBatch struct {
	store *FirestoreStore
	batch *firestore.WriteBatch
}

func (s *FirestoreStore) Batch() Batch {
	return &firestoreBatch{store: s, batch: s.client.Batch()}
}

func (b *firestoreBatch) Set(collection, id string, data map[string]interface{}) {
	b.batch.Set(b.store.doc(collection, id), data)
}

func (b *firestoreBatch) Update(collection, id string, fields map[string]interface{}) {
	b.batch.Update(b.store.doc(collection, id), toUpdates(fields))
}

func (b *firestoreBatch) Commit(ctx context.Context) error {
	_, err := b.batch.Commit(ctx)
	return mapFirestoreErr(err)
}

func toUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		if inc, ok := value.(IncrementValue); ok {
			value = firestore.Increment(inc.Delta)
		}
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	return updates
}

func mapFirestoreErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return ErrDocNotFound
	}
	return fmt.Errorf("firestore: %w", err)
}
