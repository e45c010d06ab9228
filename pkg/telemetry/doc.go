// Package telemetry configures structured logging (zerolog) and build
// tracing (OpenTelemetry) for the laybell command.
package telemetry
