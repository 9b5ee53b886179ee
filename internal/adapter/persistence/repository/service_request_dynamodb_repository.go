package repository

import (
	"context"
	"strconv"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type serviceRequestItem struct {
	ID            string `dynamodbav:"id"`
	CustomerID    string `dynamodbav:"customer_id"`
	TechnicianID  string `dynamodbav:"technician_id"`
	Category      string `dynamodbav:"category"`
	Title         string `dynamodbav:"title"`
	Description   string `dynamodbav:"description,omitempty"`
	ScheduledFor  string `dynamodbav:"scheduled_for"`
	Status        string `dynamodbav:"status"`
	AcceptedPrice string `dynamodbav:"accepted_price,omitempty"`
	Version       int64  `dynamodbav:"version"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// ServiceRequestDynamoRepository persists ServiceRequest entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Every state change bumps version; writers condition on the version they read.

type ServiceRequestDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IServiceRequestRepository = (*ServiceRequestDynamoRepository)(nil)

func NewServiceRequestDynamoRepository(ddb DynamoDBAPI, tables Tables) *ServiceRequestDynamoRepository {
	return &ServiceRequestDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tables.ServiceRequests, defaultServiceRequestsTableName),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *ServiceRequestDynamoRepository) Create(ctx context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	av, err := attributevalue.MarshalMap(toServiceRequestItem(sr))
	if err != nil {
		return entities.ServiceRequest{}, err
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
		return entities.ServiceRequest{}, err
	}
	return sr, nil
}

func (r *ServiceRequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceRequest{}, nil
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func (r *ServiceRequestDynamoRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal, expectedVersion int64) (entities.ServiceRequest, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :awaiting AND #version = :expected"),
		UpdateExpression:    aws.String("SET #accepted_price = :price, #updated_at = :updated_at ADD #version :one"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#status":         "status",
			"#version":        "version",
			"#accepted_price": "accepted_price",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":awaiting":   &types.AttributeValueMemberS{Value: string(entities.ServiceRequestStatusMenunggu)},
			":expected":   &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
			":price":      &types.AttributeValueMemberS{Value: price.String()},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.ServiceRequest{}, interfaces.ErrConditionFailed
		}
		return entities.ServiceRequest{}, err
	}

	var it serviceRequestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.ServiceRequest{}, err
	}
	return fromServiceRequestItem(it), nil
}

func toServiceRequestItem(sr entities.ServiceRequest) serviceRequestItem {
	it := serviceRequestItem{
		ID:           sr.ID,
		CustomerID:   sr.CustomerID,
		TechnicianID: sr.TechnicianID,
		Category:     sr.Category,
		Title:        sr.Title,
		Description:  sr.Description,
		ScheduledFor: formatTime(sr.ScheduledFor),
		Status:       string(sr.Status),
		Version:      sr.Version,
		CreatedAt:    formatTime(sr.CreatedAt),
		UpdatedAt:    formatTime(sr.UpdatedAt),
	}
	if sr.AcceptedPrice != nil {
		it.AcceptedPrice = sr.AcceptedPrice.String()
	}
	return it
}

func fromServiceRequestItem(it serviceRequestItem) entities.ServiceRequest {
	sr := entities.ServiceRequest{
		ID:           it.ID,
		CustomerID:   it.CustomerID,
		TechnicianID: it.TechnicianID,
		Category:     it.Category,
		Title:        it.Title,
		Description:  it.Description,
		ScheduledFor: parseTime(it.ScheduledFor),
		Status:       entities.ServiceRequestStatus(it.Status),
		Version:      it.Version,
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
	if it.AcceptedPrice != "" {
		price := parseDecimal(it.AcceptedPrice)
		sr.AcceptedPrice = &price
	}
	return sr
}
