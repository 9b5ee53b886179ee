package repository

import (
	"context"

	"servisku/internal/domain/entities"
	"servisku/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type messageItem struct {
	ID               string `dynamodbav:"id"`
	ServiceRequestID string `dynamodbav:"service_request_id"`
	SenderID         string `dynamodbav:"sender_id"`
	Type             string `dynamodbav:"type"`
	Body             string `dynamodbav:"body"`
	CreatedAt        string `dynamodbav:"created_at"`
}

// MessageDynamoRepository persists chat messages in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_request_id-index (PK: service_request_id, SK: created_at)

type MessageDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IMessageRepository = (*MessageDynamoRepository)(nil)

func NewMessageDynamoRepository(ddb DynamoDBAPI, tables Tables) *MessageDynamoRepository {
	return &MessageDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tables.Messages, defaultMessagesTableName),
	}
}

func (r *MessageDynamoRepository) Create(ctx context.Context, m entities.Message) (entities.Message, error) {
	av, err := attributevalue.MarshalMap(toMessageItem(m))
	if err != nil {
		return entities.Message{}, err
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
		return entities.Message{}, err
	}
	return m, nil
}

func (r *MessageDynamoRepository) ListByServiceRequestID(ctx context.Context, serviceRequestID string) ([]entities.Message, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(serviceRequestIDIndex),
		KeyConditionExpression: aws.String("service_request_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: serviceRequestID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Message, 0, len(raw))
	for _, av := range raw {
		var it messageItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromMessageItem(it))
	}
	return items, nil
}

func toMessageItem(m entities.Message) messageItem {
	return messageItem{
		ID:               m.ID,
		ServiceRequestID: m.ServiceRequestID,
		SenderID:         m.SenderID,
		Type:             string(m.Type),
		Body:             m.Body,
		CreatedAt:        formatTime(m.CreatedAt),
	}
}

func fromMessageItem(it messageItem) entities.Message {
	return entities.Message{
		ID:               it.ID,
		ServiceRequestID: it.ServiceRequestID,
		SenderID:         it.SenderID,
		Type:             entities.MessageType(it.Type),
		Body:             it.Body,
		CreatedAt:        parseTime(it.CreatedAt),
	}
}
