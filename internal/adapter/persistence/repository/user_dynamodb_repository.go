package repository

import (
	"context"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultUsersTableName = "users"

type userItem struct {
	ID        string `dynamodbav:"id"`
	Email     string `dynamodbav:"email"`
	Role      string `dynamodbav:"role"`
	FullName  string `dynamodbav:"full_name"`
	Phone     string `dynamodbav:"phone,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
	LastLogin string `dynamodbav:"last_login,omitempty"`
}

// UserDynamoRepository persists the profile rows provisioning creates next to
// the identity platform's accounts. The item key is the platform's user id.

type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	it := userItem{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		FullName:  u.FullName,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if u.LastLogin != nil {
		it.LastLogin = u.LastLogin.UTC().Format(time.RFC3339Nano)
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.User{}, err
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
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	u := entities.User{
		ID:        it.ID,
		Email:     it.Email,
		Role:      entities.Role(it.Role),
		FullName:  it.FullName,
		Phone:     it.Phone,
		CreatedAt: createdAt,
	}
	if it.LastLogin != "" {
		if ts, err := time.Parse(time.RFC3339Nano, it.LastLogin); err == nil {
			u.LastLogin = &ts
		}
	}
	return u, nil
}
