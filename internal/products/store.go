package products

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/wkclabs/go-ai-orderflow/internal/aws"
)

// sellerIndex is the GSI keyed on userId, used for seller listings and search.
const sellerIndex = "userId-index"

// ErrNotFound is returned by updates and deletes against a productId that
// does not exist.
var ErrNotFound = errors.New("product not found")

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new products Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Create persists a new product. The store assigns the productId and stamps
// both timestamps.
func (s *Store) Create(ctx context.Context, product Product) (*Product, error) {
	if product.ProductID == "" {
		product.ProductID = uuid.NewString()
	}
	now := s.nowFunc()
	product.CreatedAt = now
	product.UpdatedAt = now

	item, err := attributevalue.MarshalMap(product)
	if err != nil {
		return nil, fmt.Errorf("marshal product: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(productId)"),
	})
	if err != nil {
		return nil, fmt.Errorf("put product: %w", err)
	}
	return &product, nil
}

// Get fetches a product by productId. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"productId": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var p Product
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal product: %w", err)
	}
	return &p, nil
}

// Update merges the supplied fields into an existing product and bumps
// updatedAt. Field names are aliased in the expression since several
// ("name" among them) are DynamoDB reserved words.
func (s *Store) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	var setParts []string

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		attr, err := attributevalue.Marshal(fields[k])
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", k, err)
		}
		nameAlias := fmt.Sprintf("#f%d", i)
		valueAlias := fmt.Sprintf(":v%d", i)
		names[nameAlias] = k
		values[valueAlias] = attr
		setParts = append(setParts, fmt.Sprintf("%s = %s", nameAlias, valueAlias))
	}

	names["#ua"] = "updatedAt"
	values[":ua"] = &types.AttributeValueMemberS{Value: s.nowFunc().UTC().Format(time.RFC3339)}
	setParts = append(setParts, "#ua = :ua")

	updateExpr := "SET " + strings.Join(setParts, ", ")
	_, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"productId": &types.AttributeValueMemberS{Value: productID},
		},
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(productId)"),
	})
	if err != nil {
		if aws.IsConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity for inventory management.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return s.Update(ctx, productID, map[string]interface{}{"quantity": quantity})
}

// Delete removes a product. Returns ErrNotFound when nothing was deleted.
func (s *Store) Delete(ctx context.Context, productID string) error {
	out, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"productId": &types.AttributeValueMemberS{Value: productID},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySeller returns one page of a seller's products. The query fetches the
// seller's full set from the GSI and slices in memory; seller catalogs are
// small enough that offset pagination beats juggling DynamoDB page tokens.
func (s *Store) ListBySeller(ctx context.Context, userID string, page, limit int) (*SellerPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	all, err := s.queryBySeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	// id order keeps page boundaries stable across requests
	sort.Slice(all, func(i, j int) bool { return all[i].ProductID < all[j].ProductID })

	total := len(all)
	totalPages := (total + limit - 1) / limit
	offset := (page - 1) * limit

	pageItems := []Product{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		pageItems = all[offset:end]
	}

	return &SellerPage{
		Products:    pageItems,
		Count:       len(pageItems),
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

// Search filters a seller's products by a case-insensitive substring match on
// name, description, or SKU, with an optional exact category filter.
func (s *Store) Search(ctx context.Context, userID, searchTerm, category string) ([]Product, error) {
	all, err := s.queryBySeller(ctx, userID)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(searchTerm)
	matched := []Product{}
	for _, p := range all {
		matchesSearch := strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.SKU), term)
		matchesCategory := category == "" || p.Category == category
		if matchesSearch && matchesCategory {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *Store) queryBySeller(ctx context.Context, userID string) ([]Product, error) {
	var (
		result  []Product
		lastKey map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Query(ctx, &dyn.QueryInput{
			TableName:              &s.tableName,
			IndexName:              awsString(sellerIndex),
			KeyConditionExpression: awsString("userId = :uid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: userID},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query products: %w", err)
		}

		var page []Product
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
		result = append(result, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return result, nil
}

func awsString(s string) *string { return &s }
