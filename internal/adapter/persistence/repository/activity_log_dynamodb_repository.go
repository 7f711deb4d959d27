package repository

import (
	"context"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultActivityLogsTableName = "activity_logs"

type activityLogItem struct {
	ID         string         `dynamodbav:"id"`
	UserID     string         `dynamodbav:"user_id"`
	Action     string         `dynamodbav:"action"`
	EntityType string         `dynamodbav:"entity_type,omitempty"`
	EntityID   string         `dynamodbav:"entity_id,omitempty"`
	Details    map[string]any `dynamodbav:"details,omitempty"`
	UserAgent  string         `dynamodbav:"user_agent,omitempty"`
	CreatedAt  string         `dynamodbav:"created_at"`
}

// ActivityLogDynamoRepository is the append-only audit sink. Entries are
// written once and never read back by the service.

type ActivityLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IActivityLogRepository = (*ActivityLogDynamoRepository)(nil)

func NewActivityLogDynamoRepository(ddb *dynamodb.Client) *ActivityLogDynamoRepository {
	return &ActivityLogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ACTIVITY_LOGS_TABLE", defaultActivityLogsTableName),
	}
}

func (r *ActivityLogDynamoRepository) Append(ctx context.Context, entry entities.ActivityLog) error {
	av, err := attributevalue.MarshalMap(activityLogItem{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		UserAgent:  entry.UserAgent,
		CreatedAt:  entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
