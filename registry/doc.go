/*
Package registry maps Go item types to the schema of the table they live in.

A schema names the key attribute and its scalar type:

	registry.MustRegisterSchema[SimpleItem](registry.Schema{
	    KeyAttribute: "id",
	    KeyType:      types.ScalarAttributeTypeS,
	})

Data stores look the schema up when they are constructed without an explicit
one. The registry is thread-safe and is usually populated from init functions.
*/
package registry
