// Package cli is the interactive legacyvault terminal client.
//
// It plays the part of the UI: it wires configuration, the local credential
// store, the remote clients and the session manager, lets the bootstrap
// controller pick the current screen, and then reads commands in a REPL.
// Screens are reported as route lines, alerts as bracketed messages.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
