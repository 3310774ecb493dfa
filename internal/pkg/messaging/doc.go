// Package messaging provides a small broker-agnostic API for publishing and
// consuming messages.
//
// Business code depends on the interfaces in this package; the concrete
// broker (NATS in this deployment) is selected by configuration at startup.
package messaging
