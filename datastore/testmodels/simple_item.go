package testmodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/itemstore/registry"
)

// SimpleItem is a small item with one attribute of each null behaviour.
type SimpleItem struct {

	// Unique identifier, the table key.
	// Required: true
	ID string `dynamodbav:"id" json:"id"`

	// Written as an explicit null when nil.
	IntegerAttribute *int `dynamodbav:"integerAttribute" json:"integerAttribute"`

	// Omitted from updates when nil.
	StringAttribute *string `dynamodbav:"stringAttribute,omitempty" json:"stringAttribute,omitempty"`

	// Set by stores configured to stamp updates.
	// Format: date-time
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SimpleItemSchema is the schema SimpleItem is registered with.
var SimpleItemSchema = registry.Schema{
	KeyAttribute: "id",
	KeyType:      types.ScalarAttributeTypeS,
}

func init() {
	registry.MustRegisterSchema[SimpleItem](SimpleItemSchema)
}
