package repository

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeDynamoDB records every call and answers from the configured funcs.
type fakeDynamoDB struct {
	puts      []*dynamodb.PutItemInput
	gets      []*dynamodb.GetItemInput
	queries   []dynamodb.QueryInput
	updates   []*dynamodb.UpdateItemInput
	transacts []*dynamodb.TransactWriteItemsInput

	putFn      func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getFn      func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	queryFn    func(call int, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	updateFn   func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	transactFn func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoDBAPI = (*fakeDynamoDB)(nil)

var errNotConfigured = errors.New("fake: not configured")

func (f *fakeDynamoDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putFn == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return f.putFn(in)
}

func (f *fakeDynamoDB) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gets = append(f.gets, in)
	if f.getFn == nil {
		return nil, errNotConfigured
	}
	return f.getFn(in)
}

func (f *fakeDynamoDB) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	// Copy: queryAll mutates ExclusiveStartKey between pages.
	f.queries = append(f.queries, *in)
	if f.queryFn == nil {
		return nil, errNotConfigured
	}
	return f.queryFn(len(f.queries)-1, in)
}

func (f *fakeDynamoDB) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateFn == nil {
		return nil, errNotConfigured
	}
	return f.updateFn(in)
}

func (f *fakeDynamoDB) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	if f.transactFn == nil {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	return f.transactFn(in)
}
