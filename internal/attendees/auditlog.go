package attendees

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/uduakobong/go-wedding-rsvp/internal/aws"
)

// LogStore appends RSVP submissions to the rsvp_logs table. Writes are
// best-effort; callers log and swallow failures.
type LogStore struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewLogStore returns a LogStore bound to the rsvp_logs table.
func NewLogStore(client aws.DynamoDBAPI, tableName string) *LogStore {
	return &LogStore{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Append writes one submission entry. Append-only; entries are never read
// back by the application.
func (l *LogStore) Append(ctx context.Context, email, name, ip string) error {
	entry := LogEntry{
		LogID:     uuid.NewString(),
		Email:     email,
		Name:      name,
		IPAddress: ip,
		CreatedAt: l.nowFunc().UTC(),
	}

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	_, err = l.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &l.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put log entry: %w", err)
	}
	return nil
}
