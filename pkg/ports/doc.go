/*
Package ports defines the driven ports (interfaces) of ctmdp.

These interfaces decouple the algebra from storage backends, so the CLI and the
HTTP API can keep named model descriptions in memory, on disk or in Redis.

# Key Interfaces

  - ModelStore: persists named schema.Description values.

The reusable contract suite for ModelStore implementations lives in
package ports/tests.
*/
package ports
