// Package cli provides the interactive lumext command-line client.
//
// It wires configuration, the portal session, the directory client and the
// workflow controller behind a small REPL. Typical flow: open or reuse a
// portal session, load the user list, then list, select and edit users.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
