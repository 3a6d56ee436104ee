/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package update

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/itemstore/errors"
	"github.com/suparena/itemstore/storagemodels"
)

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
func n(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }

var null types.AttributeValue = &types.AttributeValueMemberNULL{Value: true}

var policies = []Policy{{IgnoreNulls: true}, {IgnoreNulls: false}}

func TestApply_Scenarios(t *testing.T) {
	w := NewWriter("id")

	t.Run("key only with ignoreNulls creates bare record", func(t *testing.T) {
		got, err := w.Apply(nil, storagemodels.PartialRecord{"id": s("id")}, Policy{IgnoreNulls: true})
		require.NoError(t, err)
		assert.Equal(t, storagemodels.Record{"id": s("id")}, got)
	})

	t.Run("null without ignoreNulls is rejected", func(t *testing.T) {
		_, err := w.Apply(nil, storagemodels.PartialRecord{"id": s("id"), "intAttr": null}, Policy{IgnoreNulls: false})
		require.Error(t, err)
		assert.True(t, errors.IsNullAttributeRejected(err))

		var rejected *errors.NullAttributeRejectedError
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "intAttr", rejected.Attribute)
	})

	t.Run("value without ignoreNulls is written", func(t *testing.T) {
		got, err := w.Apply(nil, storagemodels.PartialRecord{"id": s("id"), "intAttr": n("123")}, Policy{IgnoreNulls: false})
		require.NoError(t, err)
		assert.Equal(t, storagemodels.Record{"id": s("id"), "intAttr": n("123")}, got)
	})
}

func TestApply_NonNullPayloadOverwrites(t *testing.T) {
	w := NewWriter("id")
	existing := storagemodels.Record{"id": s("k"), "a": s("old"), "b": n("1")}
	partial := storagemodels.PartialRecord{"id": s("k"), "a": s("new"), "c": s("added")}

	for _, policy := range policies {
		got, err := w.Apply(existing, partial, policy)
		require.NoError(t, err)
		assert.Equal(t, storagemodels.Record{
			"id": s("k"),
			"a":  s("new"),
			"b":  n("1"),
			"c":  s("added"),
		}, got)
	}

	// inputs are untouched
	assert.Equal(t, s("old"), existing["a"])
	assert.NotContains(t, existing, "c")
}

func TestApply_IgnoreNullsKeepsPriorValue(t *testing.T) {
	w := NewWriter("id")
	partial := storagemodels.PartialRecord{"id": s("k"), "a": null, "b": nil, "c": s("x")}

	got, err := w.Apply(storagemodels.Record{"id": s("k"), "a": s("keep")}, partial, Policy{IgnoreNulls: true})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Record{"id": s("k"), "a": s("keep"), "c": s("x")}, got)

	got, err = w.Apply(nil, partial, Policy{IgnoreNulls: true})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Record{"id": s("k"), "c": s("x")}, got)
}

func TestApply_RejectsBeforeMerging(t *testing.T) {
	w := NewWriter("id")
	existing := storagemodels.Record{"id": s("k"), "a": s("keep")}
	partial := storagemodels.PartialRecord{"id": s("k"), "a": s("changed"), "z": null, "m": null}

	got, err := w.Apply(existing, partial, Policy{})
	require.Error(t, err)
	assert.Nil(t, got)

	var rejected *errors.NullAttributeRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "m", rejected.Attribute, "first null in name order is reported")
	assert.Equal(t, s("keep"), existing["a"])
}

func TestApply_MissingKey(t *testing.T) {
	w := NewWriter("id")
	tests := []struct {
		name    string
		partial storagemodels.PartialRecord
	}{
		{name: "absent", partial: storagemodels.PartialRecord{"a": s("x")}},
		{name: "null", partial: storagemodels.PartialRecord{"id": null, "a": s("x")}},
		{name: "nil", partial: storagemodels.PartialRecord{"id": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, policy := range policies {
				_, err := w.Apply(nil, tt.partial, policy)
				assert.True(t, errors.IsMissingKeyAttribute(err), "got %v", err)
				assert.True(t, errors.IsPolicyViolation(err))
			}
		})
	}
}

func TestApply_KeyMismatch(t *testing.T) {
	w := NewWriter("id")
	_, err := w.Apply(storagemodels.Record{"id": s("a")}, storagemodels.PartialRecord{"id": s("b")}, Policy{})
	assert.True(t, errors.IsValidationError(err))
	assert.False(t, errors.IsPolicyViolation(err))
}

func TestApply_Idempotent(t *testing.T) {
	w := NewWriter("id")
	partial := storagemodels.PartialRecord{"id": s("k"), "a": s("1"), "b": n("2")}

	for _, existing := range []storagemodels.Record{nil, {"id": s("k"), "a": s("0"), "c": s("3")}} {
		for _, policy := range policies {
			once, err := w.Apply(existing, partial, policy)
			require.NoError(t, err)
			twice, err := w.Apply(once, partial, policy)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		}
	}
}

func TestChanges(t *testing.T) {
	w := NewWriter("id")
	partial := storagemodels.PartialRecord{"id": s("k"), "a": null, "b": s("x")}

	changes, err := w.Changes(partial, Policy{IgnoreNulls: true})
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Record{"id": s("k"), "b": s("x")}, changes)

	_, err = w.Changes(partial, Policy{IgnoreNulls: false})
	assert.True(t, errors.IsNullAttributeRejected(err))
}

func TestPolicyFrom(t *testing.T) {
	opts := storagemodels.NewUpdateOptions(storagemodels.WithIgnoreNulls(true))
	assert.Equal(t, Policy{IgnoreNulls: true}, PolicyFrom(opts))
	assert.Equal(t, Policy{}, PolicyFrom(storagemodels.NewUpdateOptions()))
}

func TestStampUpdatedAt(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	changes := storagemodels.Record{"id": s("k")}
	require.NoError(t, NewWriter("id").StampUpdatedAt(changes, "updatedAt", now))

	stamp, ok := changes["updatedAt"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	parsed, err := strfmt.ParseDateTime(stamp.Value)
	require.NoError(t, err)
	assert.True(t, time.Time(parsed).Equal(now))
}

func TestStampUpdatedAt_KeyAttribute(t *testing.T) {
	changes := storagemodels.Record{"id": s("k")}
	err := NewWriter("id").StampUpdatedAt(changes, "id", time.Now())

	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, s("k"), changes["id"])
}
