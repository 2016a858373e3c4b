package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/catalog"
	"github.com/wkclabs/go-ai-orderflow/internal/orders"
	"github.com/wkclabs/go-ai-orderflow/internal/products"
)

// stubGenerator returns a canned model response and records prompts.
type stubGenerator struct {
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

// emptyDynamo answers every call with an empty result, enough for dispatch
// tests that only care about routing and parameter handling.
type emptyDynamo struct{}

func (emptyDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	return &dyn.PutItemOutput{}, nil
}

func (emptyDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	return &dyn.GetItemOutput{}, nil
}

func (emptyDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	return &dyn.UpdateItemOutput{}, nil
}

func (emptyDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	return &dyn.DeleteItemOutput{}, nil
}

func (emptyDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	return &dyn.QueryOutput{}, nil
}

func newTestAgent(gen *stubGenerator) *Agent {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return New(
		gen,
		catalog.Default(),
		orders.NewStore(emptyDynamo{}, "orders"),
		products.NewStore(emptyDynamo{}, "products"),
		logger,
	)
}

func TestProcessQuery_Dispatches(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": "get_user_orders",
		"parameters": {"user_id": "user-7"},
		"explanation": "Retrieves all orders for the user"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "show me my orders", nil)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.Success {
		t.Fatalf("expected dispatch success: %+v", result)
	}
	if result.FunctionCalled != catalog.GetUserOrders {
		t.Fatalf("expected get_user_orders, got %s", result.FunctionCalled)
	}
	if result.Explanation != "Retrieves all orders for the user" {
		t.Fatalf("unexpected explanation: %q", result.Explanation)
	}
	if result.HandlerResult == nil || !result.HandlerResult.Success {
		t.Fatalf("expected handler to run: %+v", result.HandlerResult)
	}
}

func TestProcessQuery_UnknownFunction(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": "format_hard_drive",
		"parameters": {},
		"explanation": "Not something we support"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "format my drive", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure result: %+v", result)
	}
	if result.FunctionCalled != "" {
		t.Fatalf("expected no function, got %s", result.FunctionCalled)
	}
	if len(result.AvailableFunctions) != len(catalog.Default().Names()) {
		t.Fatalf("expected the full function list, got %v", result.AvailableFunctions)
	}
	if result.Explanation != "Not something we support" {
		t.Fatalf("unexpected explanation: %q", result.Explanation)
	}
}

func TestProcessQuery_NullFunction(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": null,
		"parameters": {},
		"explanation": "No matching function found for this query"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "what's the weather", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Success || len(result.AvailableFunctions) == 0 {
		t.Fatalf("expected not-found result with available functions: %+v", result)
	}
}

func TestProcessQuery_ContextFillsDeclaredParams(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": "get_user_orders",
		"parameters": {},
		"explanation": "Retrieves all orders for the user"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "show me my orders", map[string]interface{}{
		"user_id": "user-7",
		"theme":   "dark",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got := result.Parameters.String("user_id"); got != "user-7" {
		t.Fatalf("expected user_id filled from context, got %q", got)
	}
	// only declared parameters are merged
	if result.Parameters.Has("theme") {
		t.Fatalf("undeclared context key leaked into parameters: %v", result.Parameters)
	}
	if result.HandlerResult == nil || !result.HandlerResult.Success {
		t.Fatalf("expected handler to run: %+v", result.HandlerResult)
	}
}

func TestProcessQuery_ModelParamsWin(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": "get_user_orders",
		"parameters": {"user_id": "from-model"},
		"explanation": "Retrieves orders"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "orders for from-model", map[string]interface{}{
		"user_id": "from-context",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if got := result.Parameters.String("user_id"); got != "from-model" {
		t.Fatalf("context overwrote a model-supplied parameter: %q", got)
	}
}

func TestProcessQuery_MissingRequiredParameter(t *testing.T) {
	gen := &stubGenerator{text: `{
		"function_name": "get_product_details",
		"parameters": {},
		"explanation": "Gets product details"
	}`}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "show me that product", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	// dispatch succeeded, the operation itself reports the failure
	if !result.Success {
		t.Fatalf("expected dispatch success: %+v", result)
	}
	if result.HandlerResult == nil || result.HandlerResult.Success {
		t.Fatalf("expected handler failure: %+v", result.HandlerResult)
	}
	if result.HandlerResult.Error != "Missing required parameter: product_id" {
		t.Fatalf("unexpected error: %q", result.HandlerResult.Error)
	}
}

func TestProcessQuery_SalvagesFencedJSON(t *testing.T) {
	gen := &stubGenerator{text: "Here is my selection:\n```json\n" + `{
		"function_name": "get_product_details",
		"parameters": {"product_id": "p-9"},
		"explanation": "Gets product details"
	}` + "\n```\nLet me know if you need anything else."}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "details for p-9", nil)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.Success || result.FunctionCalled != catalog.GetProductDetails {
		t.Fatalf("expected salvaged dispatch: %+v", result)
	}
	// empty backing store, so the operation reports not found
	if result.HandlerResult == nil || result.HandlerResult.Error != "Product not found" {
		t.Fatalf("unexpected handler result: %+v", result.HandlerResult)
	}
}

func TestProcessQuery_UnparsableResponse(t *testing.T) {
	gen := &stubGenerator{text: "I'm sorry, I can't help with that."}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "gibberish", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure result: %+v", result)
	}
	if result.Error != "Failed to parse AI response" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if result.RawResponse != "I'm sorry, I can't help with that." {
		t.Fatalf("raw response not preserved: %q", result.RawResponse)
	}
}

func TestProcessQuery_ModelError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("deadline exceeded")}
	a := newTestAgent(gen)

	result, err := a.ProcessQuery(context.Background(), "anything", nil)
	if err == nil {
		t.Fatalf("expected error, got result %+v", result)
	}
	if result != nil {
		t.Fatalf("expected nil result on model failure, got %+v", result)
	}
}

func TestProcessQuery_PromptCarriesCatalogAndContext(t *testing.T) {
	gen := &stubGenerator{text: `{"function_name": null, "parameters": {}, "explanation": "none"}`}
	a := newTestAgent(gen)

	_, err := a.ProcessQuery(context.Background(), "list my products", map[string]interface{}{
		"user_id": "seller-3",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "get_seller_products") {
		t.Fatalf("prompt missing catalog entries:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- user_id: seller-3") {
		t.Fatalf("prompt missing context line:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"list my products"`) {
		t.Fatalf("prompt missing the user query:\n%s", prompt)
	}
}

func TestHandlerCoverage(t *testing.T) {
	a := newTestAgent(&stubGenerator{})

	cat := catalog.Default()
	handled := map[catalog.Function]bool{}
	for _, fn := range a.Handlers() {
		handled[fn] = true
	}
	for _, e := range cat.Entries() {
		if !handled[e.Name] {
			t.Fatalf("catalog entry %s has no handler", e.Name)
		}
	}
	if len(handled) != len(cat.Entries()) {
		t.Fatalf("handler table has %d entries, catalog has %d", len(handled), len(cat.Entries()))
	}
}
