package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/ai"
	"github.com/wkclabs/go-ai-orderflow/internal/orders"
)

const systemPrompt = `You are an AI assistant for WKC that helps process orders from chat messages.

Your role is to:
1. Extract order details from user chat messages
2. Structure the order information clearly
3. Provide helpful responses to users
4. Handle order modifications and clarifications

When processing orders, extract:
- Items ordered (with quantities if specified)
- Special instructions or preferences
- Delivery/pickup preferences
- Any additional requirements

Be friendly, helpful, and accurate in your responses.
`

// Intent values for chat classification. Every message maps to exactly one.
const (
	IntentOrder        = "order"
	IntentConversation = "conversation"
)

const (
	fallbackConfirmation = "Thank you for your order! We've received it and will process it shortly."
	fallbackReply        = "Thanks for your message! Tell us what you would like to order and we'll take care of it."
)

// Assistant turns free-text chat messages into structured order details. All
// model calls degrade rather than fail: extraction falls back to a naive
// split, classification to keywords, confirmations to a static message.
type Assistant struct {
	generator ai.TextGenerator
	logger    *logrus.Logger
}

// New returns an Assistant backed by the given generator.
func New(generator ai.TextGenerator, logger *logrus.Logger) *Assistant {
	return &Assistant{generator: generator, logger: logger}
}

// Result is the outcome of extracting order details from one chat message.
type Result struct {
	OrderDetails     orders.OrderDetails
	AIAnalysis       string
	AIProcessed      bool
	ProcessedMessage string
}

// ModificationResult carries the reworked order for the modify flow.
type ModificationResult struct {
	UpdatedDetails orders.OrderDetails
	Summary        string
}

// ProcessOrderMessage extracts structured order details from a chat message.
// It never fails: a model error falls back to HeuristicExtraction, a reply
// that cannot be parsed falls back to a single generic line item.
func (a *Assistant) ProcessOrderMessage(ctx context.Context, chatMessage, userID string) *Result {
	prompt := fmt.Sprintf(`%s
User ID: %s
Chat Message: %q

Please analyze this order message and extract the following information:
1. Items ordered (list each item with quantity)
2. Special instructions or preferences
3. Delivery/pickup preference
4. Any additional requirements

Format your response as a JSON object with these fields:
- items: list of objects with "name" and "quantity"
- special_instructions: string
- delivery_preference: string
- additional_requirements: string
- ai_analysis: brief summary of the order
`, systemPrompt, userID, chatMessage)

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Warn("Order extraction model call failed, using heuristic split")
		return a.HeuristicExtraction(chatMessage)
	}

	details := parseOrderDetails(text, chatMessage)
	return &Result{
		OrderDetails:     details,
		AIAnalysis:       details.AIAnalysis,
		AIProcessed:      true,
		ProcessedMessage: chatMessage,
	}
}

// HeuristicExtraction splits the message on commas and conjunctions, treating
// each fragment as one item with quantity 1. Used when AI processing is
// disabled or the model is unreachable.
func (a *Assistant) HeuristicExtraction(message string) *Result {
	items := splitItems(message)

	delivery := "delivery"
	lower := strings.ToLower(message)
	if strings.Contains(lower, "pickup") || strings.Contains(lower, "pick up") {
		delivery = "pickup"
	}

	details := orders.OrderDetails{
		Items:               items,
		SpecialInstructions: "",
		DeliveryPreference:  delivery,
		AIAnalysis:          fmt.Sprintf("Extracted %d item(s) directly from the message", len(items)),
	}
	return &Result{
		OrderDetails:     details,
		AIAnalysis:       details.AIAnalysis,
		AIProcessed:      false,
		ProcessedMessage: message,
	}
}

// ClassifyIntent labels a message as order or conversation. The model reply
// is clamped to the two values; a model failure falls back to keywords, so
// the result is always exactly one of the two.
func (a *Assistant) ClassifyIntent(ctx context.Context, message string) string {
	prompt := fmt.Sprintf(`Classify the intent of the following chat message for an order management system.

Message: %q

Reply with exactly one word: "order" if the message is trying to order or buy something, otherwise "conversation".`, message)

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Warn("Intent model call failed, using keyword heuristic")
		return heuristicIntent(message)
	}
	if strings.Contains(strings.ToLower(text), IntentOrder) {
		return IntentOrder
	}
	return IntentConversation
}

// Keywords that mark a message as an order attempt when the model is
// unreachable.
var orderKeywords = []string{
	"order", "buy", "purchase", "want", "get me", "send me",
	"i'd like", "can i get", "can i have", "i'll have",
}

func heuristicIntent(message string) string {
	lower := strings.ToLower(message)
	for _, kw := range orderKeywords {
		if strings.Contains(lower, kw) {
			return IntentOrder
		}
	}
	return IntentConversation
}

// GenerateReply produces a conversational answer for messages that are not
// orders. Falls back to a static reply on model failure.
func (a *Assistant) GenerateReply(ctx context.Context, message string) string {
	prompt := fmt.Sprintf(`%s
The user sent the following message, which is conversational rather than an order:

Message: %q

Write a short, friendly reply. If relevant, let them know they can place an order by describing what they want.`, systemPrompt, message)

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Warn("Reply model call failed, using static reply")
		return fallbackReply
	}
	return strings.TrimSpace(text)
}

// GenerateConfirmation produces a confirmation message for a placed order.
func (a *Assistant) GenerateConfirmation(ctx context.Context, details orders.OrderDetails) string {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fallbackConfirmation
	}

	prompt := fmt.Sprintf(`Generate a friendly order confirmation message for the following order:

Order Details: %s

The message should:
1. Confirm the order was received
2. Summarize the items ordered
3. Mention any special instructions
4. Provide next steps (order number, estimated time, etc.)
5. Be friendly and professional

Keep it concise but informative.`, detailsJSON)

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Warn("Confirmation model call failed, using static message")
		return fallbackConfirmation
	}
	return strings.TrimSpace(text)
}

// ModifyOrder reworks an existing order per the modification message. Unlike
// extraction there is no fallback: a model failure is returned to the caller.
func (a *Assistant) ModifyOrder(ctx context.Context, original *orders.Order, modificationMessage string) (*ModificationResult, error) {
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("marshal original order: %w", err)
	}

	prompt := fmt.Sprintf(`%s
Original Order: %s
Modification Request: %q

Please analyze the modification request and provide the complete updated order as a JSON object with these fields:
- items: list of objects with "name" and "quantity"
- special_instructions: string
- delivery_preference: string
- additional_requirements: string
- ai_analysis: brief summary of the changes
`, systemPrompt, originalJSON, modificationMessage)

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("process modification: %w", err)
	}

	return &ModificationResult{
		UpdatedDetails: parseOrderDetails(text, modificationMessage),
		Summary:        fmt.Sprintf("Order modified based on: %s", modificationMessage),
	}, nil
}

// parseOrderDetails unmarshals the model reply, salvaging a brace-delimited
// span when the reply wraps the JSON in prose. Replies with no usable JSON
// become a single generic line item so the order is still recorded.
func parseOrderDetails(text, originalMessage string) orders.OrderDetails {
	salvaged, ok := ai.ExtractJSON(text)
	if !ok {
		return basicStructure(truncate(text, 200))
	}

	var details orders.OrderDetails
	if err := json.Unmarshal([]byte(salvaged), &details); err != nil {
		return basicStructure("Original message: " + originalMessage)
	}

	if details.Items == nil {
		details.Items = []orders.OrderItem{}
	}
	if details.DeliveryPreference == "" {
		details.DeliveryPreference = "not specified"
	}
	if details.AIAnalysis == "" {
		details.AIAnalysis = truncate(text, 200)
	}
	return details
}

func basicStructure(analysis string) orders.OrderDetails {
	return orders.OrderDetails{
		Items:               []orders.OrderItem{{Name: "order from chat", Quantity: 1}},
		SpecialInstructions: "",
		DeliveryPreference:  "not specified",
		AIAnalysis:          analysis,
	}
}

// Lead-in phrases stripped from fragments, longest first so "i want to order"
// wins over "i want".
var leadInPhrases = []string{
	"i want to order", "i would like to order", "i would like", "i'd like", "i want",
	"can i get", "could i get", "can i have", "i'll have", "i will have",
	"please send me", "send me", "get me", "give me", "order", "buy", "purchase", "please",
}

var articles = []string{"a ", "an ", "the ", "some ", "one "}

func splitItems(message string) []orders.OrderItem {
	normalized := strings.ToLower(message)
	normalized = strings.NewReplacer(" and ", ",", " & ", ",", " plus ", ",").Replace(normalized)

	items := []orders.OrderItem{}
	for _, fragment := range strings.Split(normalized, ",") {
		if name := cleanFragment(fragment); name != "" {
			items = append(items, orders.OrderItem{Name: name, Quantity: 1})
		}
	}
	return items
}

func cleanFragment(fragment string) string {
	name := strings.TrimSpace(fragment)
	name = strings.TrimSpace(strings.Trim(name, ".!?"))

	for changed := true; changed; {
		changed = false
		for _, phrase := range leadInPhrases {
			if name == phrase {
				return ""
			}
			if strings.HasPrefix(name, phrase+" ") {
				name = strings.TrimSpace(name[len(phrase)+1:])
				changed = true
				break
			}
		}
	}
	for _, article := range articles {
		if strings.HasPrefix(name, article) {
			name = strings.TrimSpace(name[len(article):])
			break
		}
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
