// Package cli provides the alpha command-line client.
//
// It wires configuration, local token storage, the API client and services
// into a cobra command tree. Every command can be run one-shot
// ("alpha products list") or from the interactive shell ("alpha shell"),
// which feeds each input line through the same tree and shows the
// connectivity state in its prompt.
//
// Output is Markdown, rendered for the terminal when stdout is one.
package cli
