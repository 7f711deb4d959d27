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
	defaultQuotesTableName = "quotes"
	quotesStatusIndex      = "status-index"
)

type quoteItem struct {
	ID     string `dynamodbav:"id"`
	UserID string `dynamodbav:"user_id"`
	Status string `dynamodbav:"status"`

	FullName       string `dynamodbav:"full_name"`
	BirthDate      string `dynamodbav:"birth_date,omitempty"`
	Company        string `dynamodbav:"company,omitempty"`
	Date           string `dynamodbav:"date,omitempty"`
	ChassisNumber  string `dynamodbav:"chassis_number,omitempty"`
	PlateNumber    string `dynamodbav:"plate_number,omitempty"`
	IdentityNumber string `dynamodbav:"identity_number,omitempty"`
	DocumentNumber string `dynamodbav:"document_number,omitempty"`
	VehicleType    string `dynamodbav:"vehicle_type,omitempty"`
	Type           string `dynamodbav:"type,omitempty"`
	Issuer         string `dynamodbav:"issuer,omitempty"`
	RelatedPerson  string `dynamodbav:"related_person,omitempty"`
	Agency         string `dynamodbav:"agency,omitempty"`
	CardInfo       string `dynamodbav:"card_info,omitempty"`
	AdditionalInfo string `dynamodbav:"additional_info,omitempty"`

	GrossPremium float64 `dynamodbav:"gross_premium,omitempty"`
	NetPremium   float64 `dynamodbav:"net_premium,omitempty"`
	Commission   float64 `dynamodbav:"commission,omitempty"`

	PolicyNumber string `dynamodbav:"policy_number,omitempty"`

	DocumentURL        string `dynamodbav:"document_url,omitempty"`
	DocumentUploadedAt string `dynamodbav:"document_uploaded_at,omitempty"`

	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: created_at) for filtered listings.
//
// policy_number and the document fields stay absent (not empty strings) until
// set, so attribute_not_exists / attribute_exists conditions can arbitrate
// the issue-policy and retention flows.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	it := toQuoteItem(q)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// List returns quotes newest first. The status index is keyed on created_at
// so filtered queries come back roughly ordered, but the repository sorts the
// final slice itself: the ordering is a contract, not a side effect of the
// index layout.
func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	var items []map[string]types.AttributeValue
	var err error
	if filter.Status != "" {
		items, err = r.queryByStatus(ctx, filter)
	} else {
		items, err = r.scanAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(items))
	for _, raw := range items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		quotes = append(quotes, fromQuoteItem(it))
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (r *QuoteDynamoRepository) queryByStatus(ctx context.Context, filter interfaces.QuoteFilter) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(filter.Status)},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if filter.OwnerID != "" {
		input.FilterExpression = aws.String("user_id = :uid")
		input.ExpressionAttributeValues[":uid"] = &types.AttributeValueMemberS{Value: filter.OwnerID}
	}

	var items []map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return items, nil
}

func (r *QuoteDynamoRepository) scanAll(ctx context.Context, filter interfaces.QuoteFilter) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if filter.OwnerID != "" {
		input.FilterExpression = aws.String("user_id = :uid")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: filter.OwnerID},
		}
	}

	var items []map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return items, nil
}

// TransitionStatus flips a pending quote to its terminal status. The
// condition keeps concurrent reviewers honest: whoever loses the race gets
// transitioned=false plus the quote as the winner left it.
func (r *QuoteDynamoRepository) TransitionStatus(ctx context.Context, id string, to entities.QuoteStatus) (entities.Quote, bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.Quote{}, false, nil
			}
			var it quoteItem
			if uerr := attributevalue.UnmarshalMap(cfe.Item, &it); uerr != nil {
				return entities.Quote{}, false, uerr
			}
			return fromQuoteItem(it), false, nil
		}
		return entities.Quote{}, false, err
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, false, err
	}
	return fromQuoteItem(it), true, nil
}

func (r *QuoteDynamoRepository) UpdatePremiums(ctx context.Context, id string, gross, net, commission float64) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET gross_premium = :gross, net_premium = :net, commission = :commission, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":gross":      &types.AttributeValueMemberN{Value: formatFloat(gross)},
			":net":        &types.AttributeValueMemberN{Value: formatFloat(net)},
			":commission": &types.AttributeValueMemberN{Value: formatFloat(commission)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) SetDocument(ctx context.Context, id, url string, uploadedAt time.Time) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET document_url = :url, document_uploaded_at = :uploaded_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":url":         &types.AttributeValueMemberS{Value: url},
			":uploaded_at": &types.AttributeValueMemberS{Value: uploadedAt.UTC().Format(time.RFC3339Nano)},
			":updated_at":  &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// ClearDocument removes both document attributes in one write. Once they are
// gone the retention selection predicate no longer matches the quote.
func (r *QuoteDynamoRepository) ClearDocument(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("REMOVE document_url, document_uploaded_at SET #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
	})
	return err
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:             q.ID,
		UserID:         q.UserID,
		Status:         string(q.Status),
		FullName:       q.FullName,
		BirthDate:      q.BirthDate,
		Company:        q.Company,
		Date:           q.Date,
		ChassisNumber:  q.ChassisNumber,
		PlateNumber:    q.PlateNumber,
		IdentityNumber: q.IdentityNumber,
		DocumentNumber: q.DocumentNumber,
		VehicleType:    q.VehicleType,
		Type:           q.Type,
		Issuer:         q.Issuer,
		RelatedPerson:  q.RelatedPerson,
		Agency:         q.Agency,
		CardInfo:       q.CardInfo,
		AdditionalInfo: q.AdditionalInfo,
		GrossPremium:   q.GrossPremium,
		NetPremium:     q.NetPremium,
		Commission:     q.Commission,
		PolicyNumber:   q.PolicyNumber,
		DocumentURL:    q.DocumentURL,
		CreatedAt:      q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if q.DocumentUploadedAt != nil {
		it.DocumentUploadedAt = q.DocumentUploadedAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	q := entities.Quote{
		ID:             it.ID,
		UserID:         it.UserID,
		Status:         entities.QuoteStatus(it.Status),
		FullName:       it.FullName,
		BirthDate:      it.BirthDate,
		Company:        it.Company,
		Date:           it.Date,
		ChassisNumber:  it.ChassisNumber,
		PlateNumber:    it.PlateNumber,
		IdentityNumber: it.IdentityNumber,
		DocumentNumber: it.DocumentNumber,
		VehicleType:    it.VehicleType,
		Type:           it.Type,
		Issuer:         it.Issuer,
		RelatedPerson:  it.RelatedPerson,
		Agency:         it.Agency,
		CardInfo:       it.CardInfo,
		AdditionalInfo: it.AdditionalInfo,
		GrossPremium:   it.GrossPremium,
		NetPremium:     it.NetPremium,
		Commission:     it.Commission,
		PolicyNumber:   it.PolicyNumber,
		DocumentURL:    it.DocumentURL,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	if it.DocumentUploadedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, it.DocumentUploadedAt); err == nil {
			q.DocumentUploadedAt = &ts
		}
	}
	return q
}
