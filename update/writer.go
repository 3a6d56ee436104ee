/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package update

import (
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/storagemodels"
)

// Policy controls how explicit nulls in a partial update are handled.
type Policy struct {
	// IgnoreNulls treats an explicit null as "no change". When false an
	// explicit null fails the update.
	IgnoreNulls bool
}

// PolicyFrom projects the writer policy out of store update options.
func PolicyFrom(opts storagemodels.UpdateOptions) Policy {
	return Policy{IgnoreNulls: opts.IgnoreNulls}
}

// Writer merges partial records into stored records for a table whose key
// attribute is KeyAttribute. A Writer holds no state besides the key name and
// is safe for concurrent use.
type Writer struct {
	keyAttribute string
}

// NewWriter returns a Writer for tables keyed by keyAttribute.
func NewWriter(keyAttribute string) Writer {
	return Writer{keyAttribute: keyAttribute}
}

// KeyAttribute returns the name of the key attribute.
func (w Writer) KeyAttribute() string {
	return w.keyAttribute
}

// Changes validates partial against policy and returns the attributes an
// update has to write: the key plus every non-null attribute. Explicit nulls
// are dropped when the policy ignores them and rejected otherwise. Nothing is
// returned unless the whole payload is valid.
func (w Writer) Changes(partial storagemodels.PartialRecord, policy Policy) (storagemodels.Record, error) {
	key, ok := partial[w.keyAttribute]
	if !ok || storagemodels.IsNull(key) {
		return nil, errors.NewMissingKeyAttributeError(w.keyAttribute)
	}

	changes := make(storagemodels.Record, len(partial))
	for _, name := range slices.Sorted(maps.Keys(partial)) {
		av := partial[name]
		if storagemodels.IsNull(av) {
			if policy.IgnoreNulls {
				continue
			}
			return nil, errors.NewNullAttributeRejectedError(name)
		}
		changes[name] = av
	}
	return changes, nil
}

// Apply returns the record that should exist after writing partial over
// existing. A nil existing record means no item is stored for the key yet.
// Attributes missing from partial keep their stored value. Neither input is
// modified.
func (w Writer) Apply(existing storagemodels.Record, partial storagemodels.PartialRecord, policy Policy) (storagemodels.Record, error) {
	changes, err := w.Changes(partial, policy)
	if err != nil {
		return nil, err
	}

	var result storagemodels.Record
	if existing == nil {
		result = storagemodels.Record{w.keyAttribute: changes[w.keyAttribute]}
	} else {
		if !reflect.DeepEqual(existing[w.keyAttribute], changes[w.keyAttribute]) {
			return nil, errors.NewValidationError(w.keyAttribute, "key of stored record does not match update")
		}
		result = existing.Clone()
	}

	for name, av := range changes {
		result[name] = av
	}
	return result, nil
}

// StampUpdatedAt sets attribute on changes to now, formatted as an ISO-8601
// date-time. The key attribute cannot be stamped.
func (w Writer) StampUpdatedAt(changes storagemodels.Record, attribute string, now time.Time) error {
	if attribute == w.keyAttribute {
		return errors.NewValidationError(attribute, "key attribute cannot hold the update time")
	}
	changes[attribute] = &types.AttributeValueMemberS{Value: strfmt.DateTime(now.UTC()).String()}
	return nil
}
