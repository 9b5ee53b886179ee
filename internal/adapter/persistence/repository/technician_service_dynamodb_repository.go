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

type technicianServiceItem struct {
	ID           string `dynamodbav:"id"`
	TechnicianID string `dynamodbav:"technician_id"`
	CategorySlug string `dynamodbav:"category_slug"`
	Active       bool   `dynamodbav:"active"`
}

// TechnicianServiceDynamoRepository reads the technician-category registry.
// The table is maintained by the technician onboarding flow.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: category_slug-index (PK: category_slug)

type TechnicianServiceDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ITechnicianServiceRepository = (*TechnicianServiceDynamoRepository)(nil)

func NewTechnicianServiceDynamoRepository(ddb DynamoDBAPI, tables Tables) *TechnicianServiceDynamoRepository {
	return &TechnicianServiceDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tables.TechnicianServices, defaultTechnicianServicesTableName),
	}
}

func (r *TechnicianServiceDynamoRepository) ListActiveByCategory(ctx context.Context, categorySlug string) ([]entities.TechnicianService, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(categorySlugIndex),
		KeyConditionExpression: aws.String("category_slug = :slug"),
		FilterExpression:       aws.String("#active = :active"),
		ExpressionAttributeNames: map[string]string{
			"#active": "active",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":slug":   &types.AttributeValueMemberS{Value: categorySlug},
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.TechnicianService, 0, len(raw))
	for _, av := range raw {
		var it technicianServiceItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, entities.TechnicianService{
			ID:           it.ID,
			TechnicianID: it.TechnicianID,
			CategorySlug: it.CategorySlug,
			Active:       it.Active,
		})
	}
	return items, nil
}
