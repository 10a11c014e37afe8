// Package common contains shared constants, sentinel errors and small helpers
// used across the YogaTrack server and client.
package common

// SessionHeaderName is the gRPC metadata key carrying the opaque session id
// on identity-gated calls.
const SessionHeaderName = "session_id"

// AdminTokenHeaderName is the gRPC metadata key carrying the administrative
// token for back-office calls (challenge creation, account activation).
const AdminTokenHeaderName = "admin_token"

// SessionTokenBytes is the amount of random bytes behind every session id.
const SessionTokenBytes = 32
