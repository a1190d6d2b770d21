// Package client contains client-side building blocks for the CrickShots CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     storefront backend: Register/Login/Logout, Profile, the image catalog,
//     checkout, purchase history and receipts.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes expired tokens, and maps gRPC statuses back to the sentinel
//     errors in internal/common.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Server-side sentinels (common.ErrUserNotFound, common.ErrWeakPassword, ...)
// come back unchanged and match with errors.Is. Transport failures map to
// ErrUnavailable.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
