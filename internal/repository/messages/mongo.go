// Package messages is the append-only log of every inbound message, kept for
// audit and the daily summary. It is deliberately outside the sale flow: a
// failed log write never blocks a reply.
package messages

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const messagesCollection = "messages"

// Record is one logged inbound message.
type Record struct {
	SenderNumber string    `bson:"sender_number"`
	MessageBody  string    `bson:"message_body"`
	Timestamp    time.Time `bson:"timestamp"`
}

// Log defines the append-only message log operations.
type Log interface {
	Save(ctx context.Context, sender, body string) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

// MongoLog implements Log on a MongoDB collection.
type MongoLog struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoLog builds a message log backed by the given database.
func NewMongoLog(db *mongo.Database) *MongoLog {
	return &MongoLog{coll: db.Collection(messagesCollection), now: time.Now}
}

// Save appends one inbound message to the log.
func (l *MongoLog) Save(ctx context.Context, sender, body string) error {
	record := Record{
		SenderNumber: sender,
		MessageBody:  body,
		Timestamp:    l.now().UTC(),
	}
	if _, err := l.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert message record: %w", err)
	}
	return nil
}

// CountSince counts logged messages with a timestamp at or after since.
func (l *MongoLog) CountSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := l.coll.CountDocuments(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("count message records: %w", err)
	}
	return count, nil
}
