// Package cli implements the interactive hospital client shell: a
// read-eval-print loop dispatching to the domain services, plus the
// terminal input helpers the command handlers share.
package cli
