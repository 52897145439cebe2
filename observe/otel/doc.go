// Package otel reserves a spot for an OpenTelemetry-backed observer.
package otel
