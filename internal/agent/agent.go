package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/ai"
	"github.com/wkclabs/go-ai-orderflow/internal/catalog"
	"github.com/wkclabs/go-ai-orderflow/internal/orders"
	"github.com/wkclabs/go-ai-orderflow/internal/products"
)

const systemPrompt = `You are an AI assistant for WKC that helps users interact with their product inventory and orders through natural language.

Your role is to:
1. Understand user queries in natural language
2. Identify the appropriate function to call
3. Extract relevant parameters from the query
4. Provide clear explanations of what will be done
`

// HandlerResult is the payload a dispatched operation returns. Success here is
// the operation's own outcome; a dispatch can succeed while the operation
// reports a failure such as a missing record.
type HandlerResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Result is the outcome of one natural-language query.
type Result struct {
	Success            bool
	Query              string
	FunctionCalled     catalog.Function
	Explanation        string
	Parameters         Params
	HandlerResult      *HandlerResult
	Error              string
	AvailableFunctions []string
	RawResponse        string
}

type handlerFunc func(ctx context.Context, params Params) *HandlerResult

// Agent routes natural-language queries to catalog operations. The model
// selects a function; the agent validates the selection against the catalog
// and invokes the matching handler.
type Agent struct {
	generator ai.TextGenerator
	catalog   *catalog.Catalog
	orders    *orders.Store
	products  *products.Store
	logger    *logrus.Logger
	handlers  map[catalog.Function]handlerFunc
}

// New wires the agent against its stores. Every catalog entry gets a handler
// here; TestHandlerCoverage keeps the two sets aligned.
func New(generator ai.TextGenerator, cat *catalog.Catalog, ordersStore *orders.Store, productsStore *products.Store, logger *logrus.Logger) *Agent {
	a := &Agent{
		generator: generator,
		catalog:   cat,
		orders:    ordersStore,
		products:  productsStore,
		logger:    logger,
	}
	a.handlers = map[catalog.Function]handlerFunc{
		catalog.GetSellerProducts:     a.getSellerProducts,
		catalog.GetProductDetails:     a.getProductDetails,
		catalog.CreateProduct:         a.createProduct,
		catalog.UpdateProduct:         a.updateProduct,
		catalog.DeleteProduct:         a.deleteProduct,
		catalog.SearchProducts:        a.searchProducts,
		catalog.UpdateProductQuantity: a.updateProductQuantity,
		catalog.GetUserOrders:         a.getUserOrders,
		catalog.GetOrderDetails:       a.getOrderDetails,
		catalog.PlaceOrder:            a.placeOrder,
		catalog.UpdateOrderStatus:     a.updateOrderStatus,
	}
	return a
}

// Handlers exposes the dispatch table keys for coverage checks.
func (a *Agent) Handlers() []catalog.Function {
	fns := make([]catalog.Function, 0, len(a.handlers))
	for fn := range a.handlers {
		fns = append(fns, fn)
	}
	return fns
}

// ProcessQuery sends the query plus the catalog to the model, validates the
// selected function, merges context values into any declared parameters the
// model omitted, and invokes the handler. The returned error is non-nil only
// when the model call itself fails; every other outcome is encoded in Result.
func (a *Agent) ProcessQuery(ctx context.Context, query string, contextData map[string]interface{}) (*Result, error) {
	prompt, err := a.buildPrompt(query, contextData)
	if err != nil {
		return nil, err
	}

	text, err := a.generator.GenerateText(ctx, prompt)
	if err != nil {
		a.logger.WithError(err).Error("Model call failed for natural language query")
		return nil, fmt.Errorf("process query: %w", err)
	}

	sel, ok := parseSelection(text)
	if !ok {
		a.logger.Warn("Failed to parse model response as a function selection")
		return &Result{
			Success:     false,
			Query:       query,
			Error:       "Failed to parse AI response",
			RawResponse: text,
		}, nil
	}

	if sel.FunctionName == nil {
		return a.notFoundResult(query, sel.Explanation), nil
	}
	fn, known := a.catalog.Parse(*sel.FunctionName)
	if !known {
		return a.notFoundResult(query, sel.Explanation), nil
	}

	entry, _ := a.catalog.Lookup(fn)
	params := Params(sel.Parameters)
	if params == nil {
		params = Params{}
	}
	for _, p := range entry.Parameters {
		if !params.Has(p.Name) {
			if v, present := contextData[p.Name]; present && v != nil {
				params[p.Name] = v
			}
		}
	}

	result := &Result{
		Success:        true,
		Query:          query,
		FunctionCalled: fn,
		Explanation:    sel.Explanation,
		Parameters:     params,
	}

	for _, p := range entry.Parameters {
		if p.Required && !params.Has(p.Name) {
			result.HandlerResult = &HandlerResult{
				Success: false,
				Error:   fmt.Sprintf("Missing required parameter: %s", p.Name),
			}
			return result, nil
		}
	}

	a.logger.WithFields(logrus.Fields{
		"function": string(fn),
	}).Info("Dispatching natural language query")

	result.HandlerResult = a.handlers[fn](ctx, params)
	return result, nil
}

func (a *Agent) notFoundResult(query, explanation string) *Result {
	if explanation == "" {
		explanation = "No matching function found"
	}
	return &Result{
		Success:            false,
		Query:              query,
		Explanation:        explanation,
		AvailableFunctions: a.catalog.Names(),
	}
}

func (a *Agent) buildPrompt(query string, contextData map[string]interface{}) (string, error) {
	catalogJSON, err := a.catalog.PromptJSON()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(systemPrompt)
	if len(contextData) > 0 {
		sb.WriteString("\nContext Information:\n")
		keys := make([]string, 0, len(contextData))
		for k := range contextData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %v\n", k, contextData[k])
		}
	}

	fmt.Fprintf(&sb, `
User Query: %q

Based on the available functions and the user's query, determine which function to call and with what parameters.

Available Functions:
%s

Respond with a JSON object containing:
{
  "function_name": "name of the function to call",
  "parameters": {
    "param1": "value1"
  },
  "explanation": "Brief explanation of what this function will do"
}

If the query doesn't match any function, respond with:
{
  "function_name": null,
  "parameters": {},
  "explanation": "No matching function found for this query"
}
`, query, catalogJSON)

	return sb.String(), nil
}

// selection is the JSON shape the dispatch prompt asks the model for.
type selection struct {
	FunctionName *string                `json:"function_name"`
	Parameters   map[string]interface{} `json:"parameters"`
	Explanation  string                 `json:"explanation"`
}

func parseSelection(text string) (*selection, bool) {
	var sel selection
	if err := json.Unmarshal([]byte(text), &sel); err == nil {
		return &sel, true
	}
	salvaged, ok := ai.ExtractJSON(text)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal([]byte(salvaged), &sel); err != nil {
		return nil, false
	}
	return &sel, true
}
