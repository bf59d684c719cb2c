package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/creativemarketingpro/backend/internal/model"
	"github.com/google/uuid"
)

// dynamodbAPI is the subset of the DynamoDB client used by DynamoContactRepository.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoContactRepository stores one item per contact message, keyed by id.
type DynamoContactRepository struct {
	api       dynamodbAPI
	tableName string
}

var _ ContactRepository = (*DynamoContactRepository)(nil)

// NewDynamoContactRepository wraps a DynamoDB client for the given table.
func NewDynamoContactRepository(api dynamodbAPI, tableName string) (*DynamoContactRepository, error) {
	if api == nil {
		return nil, errors.New("dynamodb: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("dynamodb: table name must not be empty")
	}
	return &DynamoContactRepository{api: api, tableName: tableName}, nil
}

// CreateMessage writes msg under a fresh UUID. The put is conditional so an
// id collision fails instead of overwriting.
func (r *DynamoContactRepository) CreateMessage(ctx context.Context, msg model.NewContactMessage) (*model.ContactMessage, error) {
	id := uuid.NewString()
	_, err := r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                contactItem(id, msg),
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, unavailable("dynamodb: put contact message", err)
	}
	return msg.Stored(id), nil
}

// Ping describes the table to confirm it exists and is reachable.
func (r *DynamoContactRepository) Ping(ctx context.Context) error {
	out, err := r.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return unavailable("dynamodb: describe table", err)
	}
	if out.Table != nil && out.Table.TableStatus != types.TableStatusActive {
		return unavailable("dynamodb: describe table", fmt.Errorf("table status %s", out.Table.TableStatus))
	}
	return nil
}

func contactItem(id string, msg model.NewContactMessage) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: id},
		"name":      &types.AttributeValueMemberS{Value: msg.Name},
		"email":     &types.AttributeValueMemberS{Value: msg.Email},
		"subject":   &types.AttributeValueMemberS{Value: msg.Subject},
		"message":   &types.AttributeValueMemberS{Value: msg.Message},
		"createdAt": &types.AttributeValueMemberS{Value: msg.CreatedAt.UTC().Format(time.RFC3339Nano)},
	}
}
