// Package cli provides the interactive CrickShots command-line client.
//
// It wires configuration, the local SQLite database, API services, and an
// interactive REPL. Typical flow: restore the stored session, start a
// background connectivity watcher, then browse the catalog, buy images and
// print or save receipts.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - Browse and search the catalog, show a single image
//   - Buy with UPI ID or QR payment
//   - Purchase history and receipts (terminal, local PDF, server PDF)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
