package products

import "time"

// Product represents the item stored in the products DynamoDB table. The
// attribute names are camelCase because the storefront frontend reads this
// table directly; the orders table predates it and stays snake_case.
type Product struct {
	ProductID   string    `json:"id" dynamodbav:"productId"` // PK
	Category    string    `json:"category" dynamodbav:"category"`
	CompanyName string    `json:"companyName" dynamodbav:"companyName"`
	Description string    `json:"description" dynamodbav:"description"`
	ImageURL    string    `json:"imageUrl" dynamodbav:"imageUrl"`
	Name        string    `json:"name" dynamodbav:"name"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Quantity    int       `json:"quantity" dynamodbav:"quantity"`
	SKU         string    `json:"sku" dynamodbav:"sku"`
	UserID      string    `json:"userId" dynamodbav:"userId"` // GSI userId-index
	UserType    string    `json:"userType" dynamodbav:"userType"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// SellerPage is one page of a seller's products with pagination info. Count
// is the page size actually returned, TotalCount the seller's full total.
type SellerPage struct {
	Products    []Product `json:"products"`
	Count       int       `json:"count"`
	TotalCount  int       `json:"total_count"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	Limit       int       `json:"limit"`
}
