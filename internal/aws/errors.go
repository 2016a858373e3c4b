package aws

import (
	"errors"

	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// IsConditionalCheckFailed reports whether err is a DynamoDB conditional
// write rejection. The modeled exception covers plain writes; the error-code
// check covers paths where the SDK surfaces only a generic API error.
func IsConditionalCheckFailed(err error) bool {
	var cc *dynamodbtypes.ConditionalCheckFailedException
	if errors.As(err, &cc) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}
