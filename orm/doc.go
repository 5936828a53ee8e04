/*
Package orm provides an easy to use db wrapper

Entities are protobuf messages stored under a bucket prefix. A ModelBucket
groups all entities of a single kind, so that their keys never collide with
entities of another kind:

	<bucket name>:<key>

Sequences provide ordered, unique keys that are used as entity identifiers
and as the insertion position of collection members.
*/
package orm
