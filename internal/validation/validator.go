package validation

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. Fields report under their json names
// and string fields can require non-blank values via the notblank tag.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", notBlank)

	return v
}

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validatorv10.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fieldNames maps json field names to the wording used in error messages.
var fieldNames = map[string]string{
	"user_id":              "User ID",
	"chat_message":         "Chat message",
	"message":              "Message",
	"query":                "Query",
	"status":               "Status",
	"order_id":             "Order ID",
	"modification_message": "Modification message",
	"name":                 "Product name",
	"price":                "Price",
	"quantity":             "Quantity",
	"category":             "Category",
	"companyName":          "Company name",
	"description":          "Description",
	"imageUrl":             "Image URL",
	"sku":                  "SKU",
	"userId":               "User ID",
	"userType":             "User type",
	"search_term":          "Search term",
}

// FirstMessage renders the first validation failure as a client-facing
// message, e.g. "User ID is required" or "Price must be greater than 0".
func FirstMessage(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok || len(ve) == 0 {
		return err.Error()
	}
	return messageFor(ve[0])
}

func messageFor(fe validatorv10.FieldError) string {
	name := fieldNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", name)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte", "min":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s cannot be negative", name)
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
