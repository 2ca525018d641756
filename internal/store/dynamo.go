package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoTable is the remote backend, a thin wrapper over one DynamoDB table.
type DynamoTable struct {
	client *dynamodb.Client
	name   string
}

// NewDynamoTable wraps an existing client and table name. It verifies the
// table is reachable so the caller can decide to fall back before serving.
func NewDynamoTable(ctx context.Context, client *dynamodb.Client, name string) (*DynamoTable, error) {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("describe table %s: %w", name, err)
	}
	return &DynamoTable{client: client, name: name}, nil
}

func (t *DynamoTable) Put(ctx context.Context, item Item, requireAbsent bool) error {
	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(t.name),
		Item:      av,
	}
	if requireAbsent {
		input.ConditionExpression = aws.String("attribute_not_exists(PK)")
	}
	_, err = t.client.PutItem(ctx, input)
	var conditional *types.ConditionalCheckFailedException
	if errors.As(err, &conditional) {
		return ErrConflict
	}
	return err
}

func (t *DynamoTable) Get(ctx context.Context, key Key) (Item, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       marshalKey(key),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return unmarshalItem(out.Item)
}

func (t *DynamoTable) Delete(ctx context.Context, key Key) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.name),
		Key:       marshalKey(key),
	})
	return err
}

func (t *DynamoTable) QueryPrefix(ctx context.Context, pk, skPrefix string) ([]Item, error) {
	var items []Item
	var startKey map[string]types.AttributeValue
	for {
		out, err := t.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(t.name),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":     &types.AttributeValueMemberS{Value: pk},
				":prefix": &types.AttributeValueMemberS{Value: skPrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, av := range out.Items {
			item, err := unmarshalItem(av)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (t *DynamoTable) Scan(ctx context.Context, filter ScanFilter) ([]Item, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(t.name)}
	expr := ""
	values := map[string]types.AttributeValue{}
	if filter.PKPrefix != "" {
		expr = "begins_with(PK, :pkp)"
		values[":pkp"] = &types.AttributeValueMemberS{Value: filter.PKPrefix}
	}
	if filter.SKEquals != "" {
		if expr != "" {
			expr += " AND "
		}
		expr += "SK = :sk"
		values[":sk"] = &types.AttributeValueMemberS{Value: filter.SKEquals}
	}
	if expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeValues = values
	}

	var items []Item
	for {
		out, err := t.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, av := range out.Items {
			item, err := unmarshalItem(av)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (t *DynamoTable) Count(ctx context.Context) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := t.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(t.name),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func marshalKey(key Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: key.PK},
		"SK": &types.AttributeValueMemberS{Value: key.SK},
	}
}

func unmarshalItem(av map[string]types.AttributeValue) (Item, error) {
	var item Item
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return item, nil
}
