package bookingRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNewestFirstBreaksTiesOnID(t *testing.T) {
	want := bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "id", Value: 1}}
	if len(newestFirst) != len(want) {
		t.Fatalf("sort = %v, want %v", newestFirst, want)
	}
	for i := range want {
		if newestFirst[i].Key != want[i].Key || newestFirst[i].Value != want[i].Value {
			t.Fatalf("sort key %d = %v, want %v", i, newestFirst[i], want[i])
		}
	}
}
