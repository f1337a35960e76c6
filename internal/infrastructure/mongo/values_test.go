package mongo

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlainValue(t *testing.T) {
	oid := primitive.NewObjectID()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	raw := bson.D{
		{Key: "title", Value: "Feedback"},
		{Key: "answers", Value: primitive.A{
			"Web",
			primitive.A{"nested"},
			bson.D{{Key: "inner", Value: int32(1)}},
			primitive.Null{},
		}},
		{Key: "owner", Value: oid},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(ts)},
	}

	got, ok := plainValue(raw).(map[string]interface{})
	if !ok {
		t.Fatalf("bson.D should convert to a plain map, got %T", plainValue(raw))
	}
	if got["title"] != "Feedback" {
		t.Fatalf("unexpected title: %v", got["title"])
	}
	answers, ok := got["answers"].([]interface{})
	if !ok {
		t.Fatalf("primitive.A should convert to []interface{}, got %T", got["answers"])
	}
	want := []interface{}{
		"Web",
		[]interface{}{"nested"},
		map[string]interface{}{"inner": int32(1)},
		nil,
	}
	if !reflect.DeepEqual(answers, want) {
		t.Fatalf("unexpected answers: %#v", answers)
	}
	if got["owner"] != oid.Hex() {
		t.Fatalf("ObjectID should convert to hex string, got %v", got["owner"])
	}
	at, ok := got["createdAt"].(time.Time)
	if !ok || !at.Equal(ts) {
		t.Fatalf("DateTime should convert to time.Time, got %v", got["createdAt"])
	}
}

func TestPlainValuePassthrough(t *testing.T) {
	for _, value := range []interface{}{nil, "text", 3.5, int64(12), true} {
		if got := plainValue(value); got != value {
			t.Fatalf("scalar %v changed to %v", value, got)
		}
	}
}
