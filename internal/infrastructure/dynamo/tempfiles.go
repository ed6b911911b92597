package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/nakliye-kontrol-api/internal/domain"
)

// TempFileRepo tracks generated report/backup files awaiting download.
// Rows carry a TTL so abandoned files age out on their own.
type TempFileRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTempFileRepo(client *dynamodb.Client, tableName string) *TempFileRepo {
	return &TempFileRepo{client: client, tableName: tableName}
}

func (r *TempFileRepo) Put(ctx context.Context, f *domain.TempFile) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal temp file: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TempFileRepo) Get(ctx context.Context, fileID string) (*domain.TempFile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("file_id", fileID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("temp file not found: %w", domain.ErrNotFound)
	}
	var f domain.TempFile
	if err := attributevalue.UnmarshalMap(out.Item, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *TempFileRepo) Delete(ctx context.Context, fileID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("file_id", fileID),
	})
	return err
}
