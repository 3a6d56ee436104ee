/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ScanParams defines parameters for a table scan.
type ScanParams struct {
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames contains the names for expression placeholders.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// ConsistentRead requests strongly consistent pages.
	ConsistentRead bool
	// ExclusiveStartKey resumes a previous scan
	ExclusiveStartKey map[string]types.AttributeValue
}
