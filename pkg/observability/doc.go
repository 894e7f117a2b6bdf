/*
Package observability provides Prometheus instrumentation for the model
operators.

Operators accept a *Metrics through their WithMetrics option. A nil *Metrics is
valid and records nothing, so library callers pay nothing unless they opt in.
*/
package observability
