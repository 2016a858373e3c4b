package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wkclabs/go-ai-orderflow/internal/orders"
	"github.com/wkclabs/go-ai-orderflow/internal/products"
)

// Handlers back the catalog entries one-to-one. They never return Go errors;
// store failures become HandlerResult errors so the dispatch envelope always
// carries the operation outcome.

func (a *Agent) getSellerProducts(ctx context.Context, params Params) *HandlerResult {
	page, err := a.products.ListBySeller(ctx, params.String("user_id"), params.Int("page", 1), params.Int("limit", 10))
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    page,
		Message: fmt.Sprintf("Retrieved %d products for seller", page.Count),
	}
}

func (a *Agent) getProductDetails(ctx context.Context, params Params) *HandlerResult {
	productID := params.String("product_id")
	product, err := a.products.Get(ctx, productID)
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	if product == nil {
		return &HandlerResult{Success: false, Error: "Product not found"}
	}
	return &HandlerResult{
		Success: true,
		Data:    product,
		Message: fmt.Sprintf("Retrieved details for product %s", productID),
	}
}

func (a *Agent) createProduct(ctx context.Context, params Params) *HandlerResult {
	price, _ := params.Float("price")
	product := products.Product{
		Category:    params.String("category"),
		CompanyName: params.String("companyName"),
		Description: params.String("description"),
		ImageURL:    params.String("imageUrl"),
		Name:        params.String("name"),
		Price:       price,
		Quantity:    params.Int("quantity", 0),
		SKU:         params.String("sku"),
		UserID:      params.String("userId"),
		UserType:    params.String("userType"),
	}
	if product.UserType == "" {
		product.UserType = "seller"
	}

	created, err := a.products.Create(ctx, product)
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"product_id": created.ProductID},
		Message: fmt.Sprintf("Product '%s' created successfully", created.Name),
	}
}

// updatableProductFields are the catalog parameters update_product may merge.
var updatableProductFields = []string{"name", "price", "quantity", "description", "category", "imageUrl"}

func (a *Agent) updateProduct(ctx context.Context, params Params) *HandlerResult {
	productID := params.String("product_id")

	fields := map[string]interface{}{}
	for _, f := range updatableProductFields {
		if params.Has(f) {
			fields[f] = params[f]
		}
	}
	if len(fields) == 0 {
		return &HandlerResult{Success: false, Error: "No valid update data provided"}
	}

	if err := a.products.Update(ctx, productID, fields); err != nil {
		if err == products.ErrNotFound {
			return &HandlerResult{Success: false, Error: "Product not found"}
		}
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"product_id": productID},
		Message: fmt.Sprintf("Product %s updated successfully", productID),
	}
}

func (a *Agent) deleteProduct(ctx context.Context, params Params) *HandlerResult {
	productID := params.String("product_id")
	if err := a.products.Delete(ctx, productID); err != nil {
		if err == products.ErrNotFound {
			return &HandlerResult{Success: false, Error: "Product not found"}
		}
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"product_id": productID},
		Message: fmt.Sprintf("Product %s deleted successfully", productID),
	}
}

func (a *Agent) searchProducts(ctx context.Context, params Params) *HandlerResult {
	searchTerm := params.String("search_term")
	found, err := a.products.Search(ctx, params.String("user_id"), searchTerm, params.String("category"))
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"products": found, "count": len(found)},
		Message: fmt.Sprintf("Found %d products matching '%s'", len(found), searchTerm),
	}
}

func (a *Agent) updateProductQuantity(ctx context.Context, params Params) *HandlerResult {
	productID := params.String("product_id")
	quantity := params.Int("quantity", 0)
	if err := a.products.UpdateQuantity(ctx, productID, quantity); err != nil {
		if err == products.ErrNotFound {
			return &HandlerResult{Success: false, Error: "Product not found"}
		}
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"product_id": productID, "quantity": quantity},
		Message: fmt.Sprintf("Product quantity updated to %d", quantity),
	}
}

func (a *Agent) getUserOrders(ctx context.Context, params Params) *HandlerResult {
	userOrders, err := a.orders.ListByUser(ctx, params.String("user_id"))
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"orders": userOrders, "count": len(userOrders)},
		Message: fmt.Sprintf("Retrieved %d orders for user", len(userOrders)),
	}
}

func (a *Agent) getOrderDetails(ctx context.Context, params Params) *HandlerResult {
	orderID := params.String("order_id")
	order, err := a.orders.Get(ctx, orderID)
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	if order == nil {
		return &HandlerResult{Success: false, Error: "Order not found"}
	}
	return &HandlerResult{
		Success: true,
		Data:    order,
		Message: fmt.Sprintf("Retrieved details for order %s", orderID),
	}
}

func (a *Agent) placeOrder(ctx context.Context, params Params) *HandlerResult {
	details := orders.OrderDetails{}
	if raw := params.Map("order_details"); raw != nil {
		// tolerate whatever shape the model supplied; unknown keys drop out
		if b, err := json.Marshal(raw); err == nil {
			_ = json.Unmarshal(b, &details)
		}
	}

	created, err := a.orders.Create(ctx, orders.Order{
		UserID:       params.String("user_id"),
		ChatMessage:  params.String("chat_message"),
		OrderDetails: details,
	})
	if err != nil {
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"order_id": created.OrderID},
		Message: fmt.Sprintf("Order placed successfully with ID: %s", created.OrderID),
	}
}

func (a *Agent) updateOrderStatus(ctx context.Context, params Params) *HandlerResult {
	orderID := params.String("order_id")
	status := params.String("status")
	if err := a.orders.SetStatus(ctx, orderID, status); err != nil {
		if err == orders.ErrNotFound {
			return &HandlerResult{Success: false, Error: "Order not found"}
		}
		return &HandlerResult{Success: false, Error: err.Error()}
	}
	return &HandlerResult{
		Success: true,
		Data:    map[string]interface{}{"order_id": orderID, "status": status},
		Message: fmt.Sprintf("Order status updated to %s", status),
	}
}
