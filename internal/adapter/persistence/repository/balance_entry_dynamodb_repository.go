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

type balanceEntryItem struct {
	ID        string `dynamodbav:"id"`
	OwnerKey  string `dynamodbav:"owner_key"`
	OwnerRole string `dynamodbav:"owner_role"`
	OwnerID   string `dynamodbav:"owner_id"`
	Amount    string `dynamodbav:"amount"`
	Type      string `dynamodbav:"type"`
	Note      string `dynamodbav:"note,omitempty"`
	Currency  string `dynamodbav:"currency"`
	CreatedAt string `dynamodbav:"created_at"`
}

// BalanceEntryDynamoRepository is the append-only ledger table.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: owner_key-index (PK: owner_key, SK: created_at)
//
// Entries are never updated or deleted. Amounts are stored as decimal strings.

type BalanceEntryDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IBalanceEntryRepository = (*BalanceEntryDynamoRepository)(nil)

func NewBalanceEntryDynamoRepository(ddb DynamoDBAPI, tables Tables) *BalanceEntryDynamoRepository {
	return &BalanceEntryDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(tables.BalanceEntries, defaultBalanceEntriesTableName),
	}
}

func (r *BalanceEntryDynamoRepository) Append(ctx context.Context, e entities.BalanceEntry) (entities.BalanceEntry, error) {
	if err := r.put(ctx, e); err != nil {
		return entities.BalanceEntry{}, err
	}
	return e, nil
}

func (r *BalanceEntryDynamoRepository) CreateIfAbsent(ctx context.Context, e entities.BalanceEntry) (bool, error) {
	if err := r.put(ctx, e); err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *BalanceEntryDynamoRepository) put(ctx context.Context, e entities.BalanceEntry) error {
	av, err := attributevalue.MarshalMap(toBalanceEntryItem(e))
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

func (r *BalanceEntryDynamoRepository) ListByOwner(ctx context.Context, role entities.OwnerRole, ownerID string) ([]entities.BalanceEntry, error) {
	raw, err := queryAll(ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ownerKeyIndex),
		KeyConditionExpression: aws.String("owner_key = :ok"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ok": &types.AttributeValueMemberS{Value: entities.OwnerKey(role, ownerID)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.BalanceEntry, 0, len(raw))
	for _, av := range raw {
		var it balanceEntryItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		items = append(items, fromBalanceEntryItem(it))
	}
	return items, nil
}

func toBalanceEntryItem(e entities.BalanceEntry) balanceEntryItem {
	return balanceEntryItem{
		ID:        e.ID,
		OwnerKey:  entities.OwnerKey(e.OwnerRole, e.OwnerID),
		OwnerRole: string(e.OwnerRole),
		OwnerID:   e.OwnerID,
		Amount:    e.Amount.String(),
		Type:      string(e.Type),
		Note:      e.Note,
		Currency:  e.Currency,
		CreatedAt: formatTime(e.CreatedAt),
	}
}

func fromBalanceEntryItem(it balanceEntryItem) entities.BalanceEntry {
	return entities.BalanceEntry{
		ID:        it.ID,
		OwnerRole: entities.OwnerRole(it.OwnerRole),
		OwnerID:   it.OwnerID,
		Amount:    parseDecimal(it.Amount),
		Type:      entities.BalanceEntryType(it.Type),
		Note:      it.Note,
		Currency:  it.Currency,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
