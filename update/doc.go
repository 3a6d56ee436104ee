/*
Package update implements partial updates of stored records.

A partial update writes only the attributes present in its payload. Omitted
attributes keep their stored value. Explicit nulls are governed by a Policy:

	w := update.NewWriter("id")

	// skip nulls: integerAttribute keeps its stored value
	rec, err := w.Apply(stored, partial, update.Policy{IgnoreNulls: true})

	// reject nulls: fails with errors.ErrNullAttributeRejected
	rec, err = w.Apply(stored, partial, update.Policy{IgnoreNulls: false})

When no record is stored for the key, pass nil as the existing record and the
result starts from the key alone.

Apply is a pure function. Persisting the result is the job of a datastore;
the DynamoDB store sends Changes as one UpdateItem call so the merge happens
atomically on the server.
*/
package update
