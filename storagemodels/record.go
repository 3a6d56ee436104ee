/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Record is the full set of attribute values stored for one item, key included.
type Record map[string]types.AttributeValue

// PartialRecord is an update payload. An attribute missing from the map is
// left alone by the update; an attribute mapped to a null value (see IsNull)
// is an explicit null.
type PartialRecord map[string]types.AttributeValue

// Clone returns a shallow copy of r. Attribute values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsNull reports whether av is an explicit null: either a NULL member or a
// nil interface value.
func IsNull(av types.AttributeValue) bool {
	if av == nil {
		return true
	}
	if n, ok := av.(*types.AttributeValueMemberNULL); ok {
		return n == nil || n.Value
	}
	return false
}

// KeyString renders a scalar key value as a stable string, prefixed with its
// DynamoDB type so that "1" as S and 1 as N never collide.
func KeyString(av types.AttributeValue) (string, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + v.Value, nil
	case *types.AttributeValueMemberN:
		return "N:" + v.Value, nil
	case *types.AttributeValueMemberB:
		return "B:" + base64.StdEncoding.EncodeToString(v.Value), nil
	default:
		return "", fmt.Errorf("unsupported key attribute value %T", av)
	}
}
