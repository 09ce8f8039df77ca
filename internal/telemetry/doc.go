// Package telemetry provides logging, Prometheus metrics and OpenTelemetry
// tracing for the request pipeline.
package telemetry
