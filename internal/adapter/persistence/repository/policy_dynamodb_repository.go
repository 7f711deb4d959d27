package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPoliciesTableName = "policies"

	// Guard items share the policies table under this key prefix and make
	// policy numbers globally unique; DynamoDB has no cross-item unique
	// constraint of its own.
	policyNumberKeyPrefix = "number#"
)

type policyItem struct {
	ID           string `dynamodbav:"id"`
	QuoteID      string `dynamodbav:"quote_id"`
	UserID       string `dynamodbav:"user_id"`
	PolicyNumber string `dynamodbav:"policy_number"`
	Status       string `dynamodbav:"status"`
	StartDate    string `dynamodbav:"start_date"`
	EndDate      string `dynamodbav:"end_date"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// PolicyDynamoRepository persists Policy entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string). Policy rows use a UUID; guard rows use
//     "number#<policy_number>".
//
// Issue writes three items in one TransactWriteItems call: the policy row,
// the number guard row, and the policy_number stamp on the quote row. All
// three conditions must hold or nothing lands.

type PolicyDynamoRepository struct {
	ddb             *dynamodb.Client
	tableName       string
	quotesTableName string
}

var _ interfaces.IPolicyRepository = (*PolicyDynamoRepository)(nil)

func NewPolicyDynamoRepository(ddb *dynamodb.Client) *PolicyDynamoRepository {
	return &PolicyDynamoRepository{
		ddb:             ddb,
		tableName:       getenvDefault("POLICIES_TABLE", defaultPoliciesTableName),
		quotesTableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *PolicyDynamoRepository) Issue(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	av, err := attributevalue.MarshalMap(toPolicyItem(p))
	if err != nil {
		return entities.Policy{}, err
	}

	now := p.CreatedAt.UTC().Format(time.RFC3339Nano)
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item: map[string]types.AttributeValue{
						"id":        &types.AttributeValueMemberS{Value: policyNumberKeyPrefix + p.PolicyNumber},
						"policy_id": &types.AttributeValueMemberS{Value: p.ID},
					},
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName: aws.String(r.quotesTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: p.QuoteID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :approved AND attribute_not_exists(policy_number)"),
					UpdateExpression:    aws.String("SET policy_number = :num, #updated_at = :updated_at"),
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#status":     "status",
						"#updated_at": "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusApproved)},
						":num":        &types.AttributeValueMemberS{Value: p.PolicyNumber},
						":updated_at": &types.AttributeValueMemberS{Value: now},
					},
				},
			},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return entities.Policy{}, mapCancellation(tce, err)
		}
		return entities.Policy{}, err
	}
	return p, nil
}

// mapCancellation resolves which condition in the transaction failed. Item
// order matches the TransactItems slice above.
func mapCancellation(tce *types.TransactionCanceledException, fallback error) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		switch i {
		case 1:
			return interfaces.ErrPolicyNumberTaken
		case 2:
			return interfaces.ErrQuoteAlreadyLinked
		}
	}
	return fallback
}

func (r *PolicyDynamoRepository) GetByID(ctx context.Context, id string) (entities.Policy, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Policy{}, err
	}
	if len(out.Item) == 0 {
		return entities.Policy{}, nil
	}

	var it policyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Policy{}, err
	}
	return fromPolicyItem(it), nil
}

func (r *PolicyDynamoRepository) List(ctx context.Context, ownerID string) ([]entities.Policy, error) {
	// quote_id exists only on real policy rows, never on guard rows.
	filterExpr := "attribute_exists(quote_id)"
	values := map[string]types.AttributeValue{}
	if ownerID != "" {
		filterExpr += " AND user_id = :uid"
		values[":uid"] = &types.AttributeValueMemberS{Value: ownerID}
	}
	return r.scan(ctx, filterExpr, values)
}

func (r *PolicyDynamoRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]entities.Policy, error) {
	return r.scan(ctx, "attribute_exists(quote_id) AND created_at < :cutoff", map[string]types.AttributeValue{
		":cutoff": &types.AttributeValueMemberS{Value: cutoff.UTC().Format(time.RFC3339Nano)},
	})
}

func (r *PolicyDynamoRepository) scan(ctx context.Context, filterExpr string, values map[string]types.AttributeValue) ([]entities.Policy, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String(filterExpr),
	}
	if len(values) > 0 {
		input.ExpressionAttributeValues = values
	}

	var policies []entities.Policy
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it policyItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			policies = append(policies, fromPolicyItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	sort.Slice(policies, func(i, j int) bool {
		return policies[i].CreatedAt.After(policies[j].CreatedAt)
	})
	return policies, nil
}

func toPolicyItem(p entities.Policy) policyItem {
	return policyItem{
		ID:           p.ID,
		QuoteID:      p.QuoteID,
		UserID:       p.UserID,
		PolicyNumber: p.PolicyNumber,
		Status:       string(p.Status),
		StartDate:    p.StartDate.UTC().Format(time.RFC3339),
		EndDate:      p.EndDate.UTC().Format(time.RFC3339),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPolicyItem(it policyItem) entities.Policy {
	startDate, _ := time.Parse(time.RFC3339, it.StartDate)
	endDate, _ := time.Parse(time.RFC3339, it.EndDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Policy{
		ID:           it.ID,
		QuoteID:      it.QuoteID,
		UserID:       it.UserID,
		PolicyNumber: it.PolicyNumber,
		Status:       entities.PolicyStatus(it.Status),
		StartDate:    startDate,
		EndDate:      endDate,
		CreatedAt:    createdAt,
	}
}
