// Marquee - Movie Catalog and Review Data Access
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type kindErr struct{}

func (kindErr) Error() string      { return "missing" }
func (kindErr) MetricKind() string { return "not_found" }

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"kinder", kindErr{}, "not_found"},
		{"wrapped kinder", fmt.Errorf("get: %w", kindErr{}), "not_found"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), "timeout"},
		{"canceled", context.Canceled, "canceled"},
		{"other", errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorKind(tt.err); got != tt.want {
				t.Errorf("errorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordStoreOperation(t *testing.T) {
	c := StoreOperationErrors.WithLabelValues("test", "get", "other")
	before := testutil.ToFloat64(c)

	RecordStoreOperation("test", "get", time.Millisecond, nil)
	RecordStoreOperation("test", "get", time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("error counter delta = %v, want 1", got)
	}
}

func TestRecordPageLoad(t *testing.T) {
	more := PageLoads.WithLabelValues("app", "more")
	end := PageLoads.WithLabelValues("app", "end")
	failed := PageLoads.WithLabelValues("app", "error")
	m0, e0, f0 := testutil.ToFloat64(more), testutil.ToFloat64(end), testutil.ToFloat64(failed)

	RecordPageLoad("app", 10, true, nil)
	RecordPageLoad("app", 0, false, nil)
	RecordPageLoad("app", 0, false, errors.New("backend down"))

	if d := testutil.ToFloat64(more) - m0; d != 1 {
		t.Errorf("more delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(end) - e0; d != 1 {
		t.Errorf("end delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(failed) - f0; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}
