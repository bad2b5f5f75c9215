// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tomtom215/marquee/internal/logging"
)

// MongoOptions configures OpenMongo.
type MongoOptions struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// MongoStore is a Store over a MongoDB database. Each collection maps to a
// Mongo collection of the same name and the document ID is stored as a
// string _id, which is also the sort key. Documents written by other tools
// with a non-string _id (such as an ObjectId) are not addressable by a
// string ID and are excluded from queries.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects and pings the server.
func OpenMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().ApplyURI(opts.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background()) //nolint:errcheck // already failing
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	logging.Info().Str("database", opts.Database).Msg("MongoDB document store connected")
	return &MongoStore{client: client, db: client.Database(opts.Database)}, nil
}

// Backend implements Store.
func (s *MongoStore) Backend() string { return "mongo" }

// Query implements Store.
func (s *MongoStore) Query(ctx context.Context, q Query) ([]Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Path, Value: f.Value})
	}
	// Only string IDs are paged: $gt on a string also matches every ObjectId.
	idCond := bson.D{{Key: "$type", Value: "string"}}
	if !q.After.IsZero() {
		idCond = append(idCond, bson.E{Key: "$gt", Value: q.After.ID})
	}
	filter = append(filter, bson.E{Key: "_id", Value: idCond})

	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Max > 0 {
		findOpts.SetLimit(int64(q.Max))
	}

	cur, err := s.db.Collection(q.Collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	defer func() {
		if cerr := cur.Close(context.Background()); cerr != nil {
			logging.Warn().Err(cerr).Str("collection", q.Collection).Msg("Failed to close Mongo cursor")
		}
	}()

	var out []Snapshot
	for cur.Next(ctx) {
		snap, err := snapshotFromRaw(q.Collection, cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	return out, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (Snapshot, error) {
	if collection == "" || id == "" {
		return Snapshot{}, fmt.Errorf("%w: collection and id are required", ErrInvalidQuery)
	}

	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return snapshotFromRaw(collection, raw)
}

// Put implements Store.
func (s *MongoStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	if collection == "" || id == "" {
		return fmt.Errorf("%w: collection and id are required", ErrInvalidQuery)
	}
	data, err := marshalObject(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}

	var body bson.D
	if err := bson.UnmarshalExtJSON(data, false, &body); err != nil {
		return fmt.Errorf("put %s/%s: convert to BSON: %w", collection, id, err)
	}
	body = append(bson.D{{Key: "_id", Value: id}}, withoutID(body)...)

	_, err = s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, body, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ping implements Store.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// snapshotFromRaw converts a BSON document to a Snapshot with a relaxed
// Extended JSON body, which for the scalar and nested types movies use is
// plain JSON.
func snapshotFromRaw(collection string, raw bson.Raw) (Snapshot, error) {
	idVal, err := raw.LookupErr("_id")
	if err != nil {
		return Snapshot{}, fmt.Errorf("document in %s has no _id: %w", collection, err)
	}
	id, ok := idVal.StringValueOK()
	if !ok {
		return Snapshot{}, fmt.Errorf("document in %s has a non-string _id %s (%s)", collection, idVal.String(), idVal.Type)
	}

	var body bson.D
	if err := bson.Unmarshal(raw, &body); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	data, err := bson.MarshalExtJSON(withoutID(body), false, false)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode %s/%s as JSON: %w", collection, id, err)
	}
	return Snapshot{Collection: collection, ID: id, Data: data}, nil
}

func withoutID(d bson.D) bson.D {
	out := make(bson.D, 0, len(d))
	for _, e := range d {
		if e.Key != "_id" {
			out = append(out, e)
		}
	}
	return out
}
