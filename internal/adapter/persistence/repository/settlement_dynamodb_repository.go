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
)

// SettlementDynamoRepository writes the payment and completion steps across
// the service_requests, payments and balance_entries tables in one
// TransactWriteItems call each, so a request never changes status without its
// ledger entries (and vice versa).

type SettlementDynamoRepository struct {
	ddb           DynamoDBAPI
	requestsTable string
	paymentsTable string
	entriesTable  string
	now           func() time.Time
}

var _ interfaces.ISettlementRepository = (*SettlementDynamoRepository)(nil)

func NewSettlementDynamoRepository(ddb DynamoDBAPI, tables Tables) *SettlementDynamoRepository {
	return &SettlementDynamoRepository{
		ddb:           ddb,
		requestsTable: tableOrDefault(tables.ServiceRequests, defaultServiceRequestsTableName),
		paymentsTable: tableOrDefault(tables.Payments, defaultPaymentsTableName),
		entriesTable:  tableOrDefault(tables.BalanceEntries, defaultBalanceEntriesTableName),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (r *SettlementDynamoRepository) SettlePayment(ctx context.Context, p entities.Payment, sr entities.ServiceRequest, hold entities.BalanceEntry) (entities.ServiceRequest, error) {
	paymentAV, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.ServiceRequest{}, err
	}
	holdPut, err := r.entryPut(hold)
	if err != nil {
		return entities.ServiceRequest{}, err
	}

	now := r.now()
	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:                aws.String(r.paymentsTable),
			Item:                     paymentAV,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		}},
		{Update: r.transition(sr, entities.ServiceRequestStatusMenunggu, entities.ServiceRequestStatusDiproses, now)},
		{Put: holdPut},
	}
	return r.commit(ctx, sr, entities.ServiceRequestStatusDiproses, now, items)
}

func (r *SettlementDynamoRepository) Complete(ctx context.Context, sr entities.ServiceRequest, entries []entities.BalanceEntry) (entities.ServiceRequest, error) {
	now := r.now()
	items := []types.TransactWriteItem{
		{Update: r.transition(sr, entities.ServiceRequestStatusDiproses, entities.ServiceRequestStatusSelesai, now)},
	}
	for _, e := range entries {
		put, err := r.entryPut(e)
		if err != nil {
			return entities.ServiceRequest{}, err
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}
	return r.commit(ctx, sr, entities.ServiceRequestStatusSelesai, now, items)
}

func (r *SettlementDynamoRepository) commit(ctx context.Context, sr entities.ServiceRequest, to entities.ServiceRequestStatus, now time.Time, items []types.TransactWriteItem) (entities.ServiceRequest, error) {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		if isTransactionConditionFailed(err) {
			return entities.ServiceRequest{}, interfaces.ErrConditionFailed
		}
		return entities.ServiceRequest{}, err
	}
	sr.Status = to
	sr.Version++
	sr.UpdatedAt = now
	return sr, nil
}

// transition moves the request between statuses only if nobody else wrote it
// since it was read.
func (r *SettlementDynamoRepository) transition(sr entities.ServiceRequest, from, to entities.ServiceRequestStatus, now time.Time) *types.Update {
	return &types.Update{
		TableName: aws.String(r.requestsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: sr.ID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :from AND #version = :expected"),
		UpdateExpression:    aws.String("SET #status = :to, #updated_at = :updated_at ADD #version :one"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#version":    "version",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":       &types.AttributeValueMemberS{Value: string(from)},
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":expected":   &types.AttributeValueMemberN{Value: strconv.FormatInt(sr.Version, 10)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(now)},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		},
	}
}

func (r *SettlementDynamoRepository) entryPut(e entities.BalanceEntry) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(toBalanceEntryItem(e))
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(r.entriesTable),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}, nil
}
