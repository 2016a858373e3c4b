package catalog

import (
	"strings"
	"testing"
)

func TestDefault_CoversAllOperations(t *testing.T) {
	c := Default()

	want := []Function{
		GetSellerProducts,
		GetProductDetails,
		CreateProduct,
		UpdateProduct,
		DeleteProduct,
		SearchProducts,
		UpdateProductQuantity,
		GetUserOrders,
		GetOrderDetails,
		PlaceOrder,
		UpdateOrderStatus,
	}
	if len(c.Entries()) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(c.Entries()))
	}
	for _, fn := range want {
		if _, ok := c.Lookup(fn); !ok {
			t.Fatalf("missing entry for %s", fn)
		}
	}
}

func TestParse(t *testing.T) {
	c := Default()

	fn, ok := c.Parse("get_seller_products")
	if !ok || fn != GetSellerProducts {
		t.Fatalf("expected get_seller_products, got %s / %v", fn, ok)
	}

	if _, ok := c.Parse("drop_all_tables"); ok {
		t.Fatalf("expected unknown function to be rejected")
	}
	if _, ok := c.Parse(""); ok {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestNames_DeclarationOrder(t *testing.T) {
	c := Default()

	names := c.Names()
	if len(names) != len(c.Entries()) {
		t.Fatalf("expected %d names, got %d", len(c.Entries()), len(names))
	}
	if names[0] != "get_seller_products" || names[len(names)-1] != "update_order_status" {
		t.Fatalf("unexpected ordering: %v", names)
	}
}

func TestLookup_RequiredParams(t *testing.T) {
	c := Default()

	entry, ok := c.Lookup(SearchProducts)
	if !ok {
		t.Fatalf("search_products missing")
	}
	required := map[string]bool{}
	for _, p := range entry.Parameters {
		if p.Required {
			required[p.Name] = true
		}
	}
	if !required["user_id"] || !required["search_term"] {
		t.Fatalf("expected user_id and search_term required, got %v", required)
	}
	if required["category"] {
		t.Fatalf("category should be optional")
	}
}

func TestPromptJSON(t *testing.T) {
	c := Default()

	out, err := c.PromptJSON()
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	for _, fn := range c.Names() {
		if !strings.Contains(out, `"`+fn+`"`) {
			t.Fatalf("prompt json missing %s", fn)
		}
	}
	if !strings.Contains(out, `"required": true`) {
		t.Fatalf("prompt json should carry required flags:\n%s", out)
	}
}
