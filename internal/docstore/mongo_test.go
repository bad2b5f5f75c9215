// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package docstore

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSnapshotFromRaw(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		raw, err := bson.Marshal(bson.D{{Key: "_id", Value: "tt1"}, {Key: "title", Value: "Heat"}, {Key: "rating", Value: 8.3}})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		snap, err := snapshotFromRaw("movies", raw)
		if err != nil {
			t.Fatalf("snapshotFromRaw() error = %v", err)
		}
		if snap.ID != "tt1" || snap.Cursor().ID != "tt1" {
			t.Errorf("ID = %q, cursor = %q", snap.ID, snap.Cursor().ID)
		}
		var m movieDoc
		if err := snap.DataTo(&m); err != nil {
			t.Fatalf("DataTo() error = %v", err)
		}
		if m.Title != "Heat" || m.Rating != 8.3 {
			t.Errorf("DataTo() = %+v", m)
		}
		if strings.Contains(string(snap.Data), "_id") {
			t.Errorf("Data still carries _id: %s", snap.Data)
		}
	})

	rejected := map[string]interface{}{
		"object id": bson.NewObjectID(),
		"int id":    int32(7),
	}
	for name, id := range rejected {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.D{{Key: "_id", Value: id}, {Key: "title", Value: "x"}})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if _, err := snapshotFromRaw("movies", raw); err == nil || !strings.Contains(err.Error(), "non-string _id") {
				t.Errorf("snapshotFromRaw() error = %v, want non-string _id error", err)
			}
		})
	}

	t.Run("missing id", func(t *testing.T) {
		raw, _ := bson.Marshal(bson.D{{Key: "title", Value: "x"}})
		if _, err := snapshotFromRaw("movies", raw); err == nil {
			t.Error("snapshotFromRaw() should fail without _id")
		}
	})
}
