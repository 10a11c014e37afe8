// Package cli provides the interactive YogaTrack command-line client.
//
// It wires configuration and the gRPC client to a small REPL. Typical flow:
// register or log in, submit practice sessions, then look at the summary,
// dashboard, statistics, leaderboard and today's challenge.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
