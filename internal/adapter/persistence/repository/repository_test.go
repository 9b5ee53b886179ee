package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"servisku/internal/domain/entities"
	"servisku/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestServiceRequestDynamoRepository(t *testing.T) {
	price := decimal.RequireFromString("150000.50")
	sr := entities.ServiceRequest{
		ID:            "sr-1",
		CustomerID:    "u1",
		TechnicianID:  "t1",
		Category:      "ac",
		Title:         "AC leaking",
		ScheduledFor:  testNow.Add(time.Hour),
		Status:        entities.ServiceRequestStatusMenunggu,
		AcceptedPrice: &price,
		Version:       2,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}

	t.Run("create uses conditional put and table default", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewServiceRequestDynamoRepository(ddb, Tables{})
		if _, err := repo.Create(context.Background(), sr); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in := ddb.puts[0]
		if aws.ToString(in.TableName) != "service_requests" || aws.ToString(in.ConditionExpression) != "attribute_not_exists(#id)" {
			t.Fatalf("unexpected put: %+v", in)
		}
		if v := in.Item["accepted_price"].(*types.AttributeValueMemberS).Value; v != "150000.5" {
			t.Fatalf("price must be stored as exact decimal string, got %q", v)
		}
	})

	t.Run("get round trips", func(t *testing.T) {
		ddb := &fakeDynamoDB{getFn: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: mustMarshal(t, toServiceRequestItem(sr))}, nil
		}}
		repo := NewServiceRequestDynamoRepository(ddb, Tables{ServiceRequests: "custom"})
		got, err := repo.GetByID(context.Background(), "sr-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if aws.ToString(ddb.gets[0].TableName) != "custom" || !aws.ToBool(ddb.gets[0].ConsistentRead) {
			t.Fatalf("expected consistent read on custom table")
		}
		if got.ID != "sr-1" || got.Version != 2 || got.AcceptedPrice == nil || !got.AcceptedPrice.Equal(price) || !got.ScheduledFor.Equal(sr.ScheduledFor) {
			t.Fatalf("unexpected request: %+v", got)
		}
	})

	t.Run("get missing returns zero value", func(t *testing.T) {
		ddb := &fakeDynamoDB{getFn: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		}}
		got, err := NewServiceRequestDynamoRepository(ddb, Tables{}).GetByID(context.Background(), "nope")
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero value, got err=%v sr=%+v", err, got)
		}
	})

	t.Run("update price conditions on status and version", func(t *testing.T) {
		ddb := &fakeDynamoDB{updateFn: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			updated := sr
			updated.Version = 3
			return &dynamodb.UpdateItemOutput{Attributes: mustMarshal(t, toServiceRequestItem(updated))}, nil
		}}
		repo := NewServiceRequestDynamoRepository(ddb, Tables{})
		got, err := repo.UpdatePrice(context.Background(), "sr-1", price, 2)
		if err != nil || got.Version != 3 {
			t.Fatalf("unexpected result err=%v sr=%+v", err, got)
		}
		in := ddb.updates[0]
		if in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value != "2" {
			t.Fatalf("expected version condition")
		}
		if in.ExpressionAttributeValues[":awaiting"].(*types.AttributeValueMemberS).Value != "menunggu" {
			t.Fatalf("expected status condition")
		}
	})

	t.Run("update price condition failure", func(t *testing.T) {
		ddb := &fakeDynamoDB{updateFn: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		_, err := NewServiceRequestDynamoRepository(ddb, Tables{}).UpdatePrice(context.Background(), "sr-1", price, 2)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}
	})
}

func TestBalanceEntryDynamoRepository(t *testing.T) {
	e := entities.BalanceEntry{
		ID:        "initial_balance#user#u1",
		OwnerRole: entities.OwnerRoleUser,
		OwnerID:   "u1",
		Amount:    decimal.Zero,
		Type:      entities.BalanceEntryInitialBalance,
		Currency:  "IDR",
		CreatedAt: testNow,
	}

	t.Run("create if absent", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewBalanceEntryDynamoRepository(ddb, Tables{})
		created, err := repo.CreateIfAbsent(context.Background(), e)
		if err != nil || !created {
			t.Fatalf("expected created, got %v %v", created, err)
		}
		if ddb.puts[0].Item["owner_key"].(*types.AttributeValueMemberS).Value != "user#u1" {
			t.Fatalf("owner_key not stored")
		}
	})

	t.Run("create if absent loses race", func(t *testing.T) {
		ddb := &fakeDynamoDB{putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		created, err := NewBalanceEntryDynamoRepository(ddb, Tables{}).CreateIfAbsent(context.Background(), e)
		if err != nil || created {
			t.Fatalf("expected not created without error, got %v %v", created, err)
		}
	})

	t.Run("append surfaces duplicate ids", func(t *testing.T) {
		ddb := &fakeDynamoDB{putFn: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		if _, err := NewBalanceEntryDynamoRepository(ddb, Tables{}).Append(context.Background(), e); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("list follows pages", func(t *testing.T) {
		second := e
		second.ID = "adj-1"
		second.Amount = decimal.NewFromInt(-20000)
		second.Type = entities.BalanceEntryEscrowRelease
		ddb := &fakeDynamoDB{queryFn: func(call int, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if call == 0 {
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{mustMarshal(t, toBalanceEntryItem(e))},
					LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: e.ID}},
				}, nil
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{mustMarshal(t, toBalanceEntryItem(second))}}, nil
		}}
		got, err := NewBalanceEntryDynamoRepository(ddb, Tables{}).ListByOwner(context.Background(), entities.OwnerRoleUser, "u1")
		if err != nil || len(got) != 2 {
			t.Fatalf("unexpected result err=%v entries=%+v", err, got)
		}
		if !got[1].Amount.Equal(decimal.NewFromInt(-20000)) || got[1].Type != entities.BalanceEntryEscrowRelease {
			t.Fatalf("unexpected second entry: %+v", got[1])
		}
		if len(ddb.queries) != 2 || ddb.queries[1].ExclusiveStartKey == nil {
			t.Fatalf("expected second page request")
		}
		if aws.ToString(ddb.queries[0].IndexName) != "owner_key-index" {
			t.Fatalf("expected owner index")
		}
	})
}

func TestTechnicianServiceDynamoRepository(t *testing.T) {
	ddb := &fakeDynamoDB{queryFn: func(_ int, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			mustMarshal(t, technicianServiceItem{ID: "ts1", TechnicianID: "t1", CategorySlug: "ac", Active: true}),
		}}, nil
	}}
	got, err := NewTechnicianServiceDynamoRepository(ddb, Tables{}).ListActiveByCategory(context.Background(), "ac")
	if err != nil || len(got) != 1 || got[0].TechnicianID != "t1" || !got[0].Active {
		t.Fatalf("unexpected result err=%v rows=%+v", err, got)
	}
	in := ddb.queries[0]
	if aws.ToString(in.IndexName) != "category_slug-index" || aws.ToString(in.FilterExpression) != "#active = :active" {
		t.Fatalf("unexpected query: %+v", in)
	}
}

func TestPaymentDynamoRepository(t *testing.T) {
	p := entities.Payment{
		ID:                 "p1",
		ServiceRequestID:   "sr-1",
		Amount:             decimal.NewFromInt(150000),
		Status:             entities.PaymentStatusPending,
		Provider:           entities.PaymentProviderMercadoPago,
		ProviderPaymentID:  "mp-1",
		ProviderStatus:     "in_process",
		ProviderPayloadRaw: []byte(`{"id":1}`),
		CreatedAt:          testNow,
	}
	ddb := &fakeDynamoDB{queryFn: func(int, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{mustMarshal(t, toPaymentItem(p))}}, nil
	}}
	repo := NewPaymentDynamoRepository(ddb, Tables{})
	if _, err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := repo.ListByServiceRequestID(context.Background(), "sr-1")
	if err != nil || len(got) != 1 {
		t.Fatalf("unexpected result err=%v payments=%+v", err, got)
	}
	if string(got[0].ProviderPayloadRaw) != `{"id":1}` || !got[0].Amount.Equal(p.Amount) || !got[0].CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected payment: %+v", got[0])
	}
}

func TestSettlementDynamoRepository(t *testing.T) {
	price := decimal.NewFromInt(150000)
	sr := entities.ServiceRequest{ID: "sr-1", CustomerID: "u1", TechnicianID: "t1", Status: entities.ServiceRequestStatusMenunggu, AcceptedPrice: &price, Version: 4}
	hold := entities.BalanceEntry{ID: "escrow_hold#sr-1", OwnerRole: entities.OwnerRoleTechnician, OwnerID: "t1", Amount: price, Type: entities.BalanceEntryEscrowRelease, Currency: "IDR", CreatedAt: testNow}
	payment := entities.Payment{ID: "p1", ServiceRequestID: "sr-1", Amount: price, Status: entities.PaymentStatusSettled, CreatedAt: testNow}

	t.Run("settle payment writes one transaction", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewSettlementDynamoRepository(ddb, Tables{})
		repo.now = func() time.Time { return testNow }

		got, err := repo.SettlePayment(context.Background(), payment, sr, hold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.ServiceRequestStatusDiproses || got.Version != 5 || !got.UpdatedAt.Equal(testNow) {
			t.Fatalf("unexpected request: %+v", got)
		}
		items := ddb.transacts[0].TransactItems
		if len(items) != 3 {
			t.Fatalf("expected 3 transaction items, got %d", len(items))
		}
		if aws.ToString(items[0].Put.TableName) != "payments" || aws.ToString(items[2].Put.TableName) != "balance_entries" {
			t.Fatalf("unexpected tables")
		}
		upd := items[1].Update
		if upd.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value != "menunggu" ||
			upd.ExpressionAttributeValues[":to"].(*types.AttributeValueMemberS).Value != "diproses" ||
			upd.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value != "4" {
			t.Fatalf("unexpected transition: %+v", upd.ExpressionAttributeValues)
		}
	})

	t.Run("complete writes transition and entries", func(t *testing.T) {
		ddb := &fakeDynamoDB{}
		repo := NewSettlementDynamoRepository(ddb, Tables{})
		inProgress := sr
		inProgress.Status = entities.ServiceRequestStatusDiproses
		release := hold
		release.ID = "escrow_release#sr-1"
		release.Amount = price.Neg()
		settle := hold
		settle.ID = "settlement#sr-1"
		settle.Type = entities.BalanceEntrySettlement

		got, err := repo.Complete(context.Background(), inProgress, []entities.BalanceEntry{release, settle})
		if err != nil || got.Status != entities.ServiceRequestStatusSelesai {
			t.Fatalf("unexpected result err=%v sr=%+v", err, got)
		}
		if n := len(ddb.transacts[0].TransactItems); n != 3 {
			t.Fatalf("expected 3 transaction items, got %d", n)
		}
	})

	t.Run("cancelled transaction maps to condition failure", func(t *testing.T) {
		ddb := &fakeDynamoDB{transactFn: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			}}
		}}
		_, err := NewSettlementDynamoRepository(ddb, Tables{}).SettlePayment(context.Background(), payment, sr, hold)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}
	})

	t.Run("other transaction errors pass through", func(t *testing.T) {
		ddb := &fakeDynamoDB{transactFn: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{{Code: aws.String("ThrottlingError")}}}
		}}
		_, err := NewSettlementDynamoRepository(ddb, Tables{}).SettlePayment(context.Background(), payment, sr, hold)
		if err == nil || errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected raw error, got %v", err)
		}
	})
}
