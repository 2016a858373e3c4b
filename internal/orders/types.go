package orders

import "time"

// Statuses the backend itself writes. The status column accepts any string;
// callers may set values outside this list and reads return them verbatim.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusModified   = "modified"
)

// OrderItem is a single extracted line item. Names are free text from the
// chat message, not references into the products table.
type OrderItem struct {
	Name         string   `json:"name" dynamodbav:"name"`
	Quantity     int      `json:"quantity" dynamodbav:"quantity"`
	Price        *float64 `json:"price,omitempty" dynamodbav:"price,omitempty"`
	SpecialNotes string   `json:"special_notes,omitempty" dynamodbav:"special_notes,omitempty"`
}

// OrderDetails is the structured result of order extraction.
type OrderDetails struct {
	Items                  []OrderItem `json:"items" dynamodbav:"items"`
	SpecialInstructions    string      `json:"special_instructions" dynamodbav:"special_instructions"`
	DeliveryPreference     string      `json:"delivery_preference" dynamodbav:"delivery_preference"`
	AdditionalRequirements string      `json:"additional_requirements,omitempty" dynamodbav:"additional_requirements,omitempty"`
	AIAnalysis             string      `json:"ai_analysis,omitempty" dynamodbav:"ai_analysis,omitempty"`
}

// Order represents the item stored in the orders DynamoDB table.
type Order struct {
	OrderID      string       `json:"id" dynamodbav:"order_id"` // PK
	UserID       string       `json:"user_id" dynamodbav:"user_id"`
	ChatMessage  string       `json:"chat_message" dynamodbav:"chat_message"`
	OrderDetails OrderDetails `json:"order_details" dynamodbav:"order_details"`
	AIProcessed  bool         `json:"ai_processed" dynamodbav:"ai_processed"`
	AIAnalysis   string       `json:"ai_analysis,omitempty" dynamodbav:"ai_analysis,omitempty"`
	Status       string       `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" dynamodbav:"updated_at"`
}
