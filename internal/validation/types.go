package validation

// PlaceOrderRequest is the payload for POST /place_order. AI processing
// defaults to on when the flag is omitted.
type PlaceOrderRequest struct {
	UserID          string                 `json:"user_id" validate:"required,notblank"`
	ChatMessage     string                 `json:"chat_message" validate:"required,notblank"`
	OrderDetails    map[string]interface{} `json:"order_details"`
	UseAIProcessing *bool                  `json:"use_ai_processing"`
}

// UseAI reports whether AI extraction should run for this request.
func (r *PlaceOrderRequest) UseAI() bool {
	return r.UseAIProcessing == nil || *r.UseAIProcessing
}

// ChatMessageRequest is the payload for POST /process_chat.
type ChatMessageRequest struct {
	UserID  string                 `json:"user_id" validate:"required,notblank"`
	Message string                 `json:"message" validate:"required,notblank"`
	Context map[string]interface{} `json:"context"`
}

// OrderStatusUpdate is the payload for PUT /order/:order_id/status. The
// status value is free text; no transition graph is enforced.
type OrderStatusUpdate struct {
	Status string `json:"status" validate:"required,notblank"`
}

// OrderModificationRequest is the payload for PUT /order/:order_id/modify.
type OrderModificationRequest struct {
	UserID              string `json:"user_id" validate:"required,notblank"`
	OrderID             string `json:"order_id" validate:"required,notblank"`
	ModificationMessage string `json:"modification_message" validate:"required,notblank"`
}

// NaturalLanguageQueryRequest is the payload for POST /query.
type NaturalLanguageQueryRequest struct {
	Query   string                 `json:"query" validate:"required,notblank"`
	UserID  string                 `json:"user_id"`
	Context map[string]interface{} `json:"context"`
}

// ProductCreateRequest is the payload for POST /products. Field order mirrors
// the check order of the responses: name, price, quantity, then the rest.
type ProductCreateRequest struct {
	Name        string   `json:"name" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,notblank"`
	CompanyName string   `json:"companyName" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	ImageURL    string   `json:"imageUrl" validate:"required,notblank"`
	SKU         string   `json:"sku" validate:"required,notblank"`
	UserID      string   `json:"userId" validate:"required,notblank"`
	UserType    string   `json:"userType"`
}

// ProductUpdateRequest is the payload for PUT /products/:product_id. Only
// supplied fields are merged into the stored product.
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	CompanyName *string  `json:"companyName"`
	SKU         *string  `json:"sku"`
}

// Fields returns the supplied fields keyed by their stored attribute names.
func (r *ProductUpdateRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Quantity != nil {
		fields["quantity"] = *r.Quantity
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	if r.ImageURL != nil {
		fields["imageUrl"] = *r.ImageURL
	}
	if r.CompanyName != nil {
		fields["companyName"] = *r.CompanyName
	}
	if r.SKU != nil {
		fields["sku"] = *r.SKU
	}
	return fields
}
