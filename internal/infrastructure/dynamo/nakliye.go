package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nakliye-kontrol-api/internal/domain"
)

// NakliyeRepo provides typed DynamoDB operations for the nakliye_records table.
type NakliyeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNakliyeRepo(client *dynamodb.Client, tableName string) *NakliyeRepo {
	return &NakliyeRepo{client: client, tableName: tableName}
}

func (r *NakliyeRepo) Put(ctx context.Context, rec *domain.NakliyeRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal nakliye record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NakliyeRepo) Get(ctx context.Context, id string) (*domain.NakliyeRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("id", id),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("nakliye record not found: %w", domain.ErrNotFound)
	}
	var rec domain.NakliyeRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Scan returns every nakliye record. Ordering and skip/limit windowing
// happen in the service layer; the table has no range key to sort on.
func (r *NakliyeRepo) Scan(ctx context.Context) ([]domain.NakliyeRecord, error) {
	return r.scan(ctx, nil, nil)
}

// Search returns records whose search_text attribute contains the lowercased
// query. search_text is written on every Put/Update as the lowercased,
// separator-joined musteri, sira_no, kod and irsaliye_no fields, which makes
// contains() case-insensitive and keeps matches inside a single field.
func (r *NakliyeRepo) Search(ctx context.Context, query string) ([]domain.NakliyeRecord, error) {
	filter := aws.String("contains(search_text, :q)")
	values := map[string]types.AttributeValue{
		":q": &types.AttributeValueMemberS{Value: strings.ToLower(query)},
	}
	return r.scan(ctx, filter, values)
}

func (r *NakliyeRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("id", id),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// HardDelete permanently removes a record; the ledger has no soft delete.
func (r *NakliyeRepo) HardDelete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("id", id),
	})
	return err
}

func (r *NakliyeRepo) scan(ctx context.Context, filter *string, values map[string]types.AttributeValue) ([]domain.NakliyeRecord, error) {
	var records []domain.NakliyeRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          filter,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.NakliyeRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		records = append(records, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return records, nil
}
