package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"iss-sky-scanner/internal/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// SQLiteSink writes to the feedback table created by storage.OpenSQLite
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(db *sql.DB) *SQLiteSink {
	return &SQLiteSink{db: db}
}

func (s *SQLiteSink) Store(ctx context.Context, entry types.FeedbackEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, rating, feedback, user_agent, source, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Rating, entry.Feedback, entry.UserAgent, entry.Source, entry.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// PutItemAPI is the part of the DynamoDB client the sink uses
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type feedbackItem struct {
	ID        string `dynamodbav:"id"`
	Rating    int    `dynamodbav:"rating,omitempty"`
	Feedback  string `dynamodbav:"feedback"`
	UserAgent string `dynamodbav:"user_agent"`
	Source    string `dynamodbav:"source"`
	Timestamp string `dynamodbav:"timestamp"`
}

// DynamoDBSink writes one item per entry keyed by id
type DynamoDBSink struct {
	client    PutItemAPI
	tableName string
}

func NewDynamoDBSink(client PutItemAPI, tableName string) *DynamoDBSink {
	return &DynamoDBSink{client: client, tableName: tableName}
}

func (s *DynamoDBSink) Store(ctx context.Context, entry types.FeedbackEntry) error {
	item, err := attributevalue.MarshalMap(feedbackItem{
		ID:        entry.ID,
		Rating:    entry.Rating,
		Feedback:  entry.Feedback,
		UserAgent: entry.UserAgent,
		Source:    entry.Source,
		Timestamp: entry.Timestamp.Format("2006-01-02T15:04:05.000000Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to save feedback to DynamoDB: %w", err)
	}
	return nil
}
