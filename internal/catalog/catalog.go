package catalog

import (
	"encoding/json"
	"fmt"
)

// Function identifies one backend operation the model may select. Dispatch is
// keyed on these constants, never on raw strings from the model.
type Function string

const (
	GetSellerProducts     Function = "get_seller_products"
	GetProductDetails     Function = "get_product_details"
	CreateProduct         Function = "create_product"
	UpdateProduct         Function = "update_product"
	DeleteProduct         Function = "delete_product"
	SearchProducts        Function = "search_products"
	UpdateProductQuantity Function = "update_product_quantity"
	GetUserOrders         Function = "get_user_orders"
	GetOrderDetails       Function = "get_order_details"
	PlaceOrder            Function = "place_order"
	UpdateOrderStatus     Function = "update_order_status"
)

// Param describes one parameter of a catalog entry.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// Entry describes one callable operation. The JSON form of the entry is
// embedded verbatim in the dispatch prompt.
type Entry struct {
	Name        Function `json:"name"`
	Description string   `json:"description"`
	Parameters  []Param  `json:"parameters"`
}

// Catalog is the static set of operations exposed to the model. Built once at
// startup and read-only afterwards.
type Catalog struct {
	entries []Entry
	byName  map[Function]Entry
}

// New builds a catalog from the given entries.
func New(entries []Entry) *Catalog {
	byName := make(map[Function]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	return &Catalog{entries: entries, byName: byName}
}

// Default returns the full operation set backing the natural-language surface.
// Adding an operation means adding an entry here and a matching handler in the
// agent package.
func Default() *Catalog {
	return New([]Entry{
		{
			Name:        GetSellerProducts,
			Description: "Get all products for a specific seller with pagination",
			Parameters: []Param{
				{Name: "user_id", Type: "string", Required: true, Description: "Seller's user ID"},
				{Name: "page", Type: "integer", Required: false, Description: "Page number (default: 1)"},
				{Name: "limit", Type: "integer", Required: false, Description: "Number of products per page (default: 10)"},
			},
		},
		{
			Name:        GetProductDetails,
			Description: "Get detailed information about a specific product",
			Parameters: []Param{
				{Name: "product_id", Type: "string", Required: true, Description: "Product ID to retrieve"},
			},
		},
		{
			Name:        CreateProduct,
			Description: "Create a new product for a seller",
			Parameters: []Param{
				{Name: "category", Type: "string", Required: true, Description: "Product category (e.g., Electronics, Clothing)"},
				{Name: "companyName", Type: "string", Required: true, Description: "Company name"},
				{Name: "description", Type: "string", Required: true, Description: "Product description"},
				{Name: "imageUrl", Type: "string", Required: true, Description: "Product image URL"},
				{Name: "name", Type: "string", Required: true, Description: "Product name"},
				{Name: "price", Type: "number", Required: true, Description: "Product price"},
				{Name: "quantity", Type: "integer", Required: true, Description: "Available quantity"},
				{Name: "sku", Type: "string", Required: true, Description: "Product SKU"},
				{Name: "userId", Type: "string", Required: true, Description: "Seller's user ID"},
				{Name: "userType", Type: "string", Required: false, Description: "User type (default: seller)"},
			},
		},
		{
			Name:        UpdateProduct,
			Description: "Update an existing product's information",
			Parameters: []Param{
				{Name: "product_id", Type: "string", Required: true, Description: "Product ID to update"},
				{Name: "name", Type: "string", Required: false, Description: "New product name"},
				{Name: "price", Type: "number", Required: false, Description: "New price"},
				{Name: "quantity", Type: "integer", Required: false, Description: "New quantity"},
				{Name: "description", Type: "string", Required: false, Description: "New description"},
				{Name: "category", Type: "string", Required: false, Description: "New category"},
				{Name: "imageUrl", Type: "string", Required: false, Description: "New image URL"},
			},
		},
		{
			Name:        DeleteProduct,
			Description: "Delete a product from inventory",
			Parameters: []Param{
				{Name: "product_id", Type: "string", Required: true, Description: "Product ID to delete"},
			},
		},
		{
			Name:        SearchProducts,
			Description: "Search products for a seller by name, description, or SKU",
			Parameters: []Param{
				{Name: "user_id", Type: "string", Required: true, Description: "Seller's user ID"},
				{Name: "search_term", Type: "string", Required: true, Description: "Search term"},
				{Name: "category", Type: "string", Required: false, Description: "Category filter"},
			},
		},
		{
			Name:        UpdateProductQuantity,
			Description: "Update the quantity of a specific product",
			Parameters: []Param{
				{Name: "product_id", Type: "string", Required: true, Description: "Product ID"},
				{Name: "quantity", Type: "integer", Required: true, Description: "New quantity"},
			},
		},
		{
			Name:        GetUserOrders,
			Description: "Get all orders for a specific user",
			Parameters: []Param{
				{Name: "user_id", Type: "string", Required: true, Description: "User's ID"},
			},
		},
		{
			Name:        GetOrderDetails,
			Description: "Get detailed information about a specific order",
			Parameters: []Param{
				{Name: "order_id", Type: "string", Required: true, Description: "Order ID to retrieve"},
			},
		},
		{
			Name:        PlaceOrder,
			Description: "Place a new order via chat message",
			Parameters: []Param{
				{Name: "user_id", Type: "string", Required: true, Description: "Buyer's user ID"},
				{Name: "chat_message", Type: "string", Required: true, Description: "Order message"},
				{Name: "order_details", Type: "object", Required: false, Description: "Additional order details"},
				{Name: "use_ai_processing", Type: "boolean", Required: false, Description: "Whether to use AI processing (default: true)"},
			},
		},
		{
			Name:        UpdateOrderStatus,
			Description: "Update the status of an order",
			Parameters: []Param{
				{Name: "order_id", Type: "string", Required: true, Description: "Order ID"},
				{Name: "status", Type: "string", Required: true, Description: "New status (pending, processing, completed, cancelled)"},
			},
		},
	})
}

// Entries returns the catalog in declaration order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Lookup returns the entry for a function.
func (c *Catalog) Lookup(name Function) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Parse validates a raw function name from the model against the catalog.
func (c *Catalog) Parse(raw string) (Function, bool) {
	fn := Function(raw)
	_, ok := c.byName[fn]
	return fn, ok
}

// Names returns every function name, used in the not-found response so the
// caller can see what the model was choosing from.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = string(e.Name)
	}
	return names
}

// PromptJSON renders the catalog as indented JSON for prompt embedding.
func (c *Catalog) PromptJSON() (string, error) {
	b, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal catalog: %w", err)
	}
	return string(b), nil
}
