// Package client wraps the YogaTrack gRPC API for the CLI. It keeps the
// session id returned by Login and attaches it to every later call.
package client
