// Package secret masks sensitive material before it reaches logs or tool
// output.
//
// Known secret values (the configured API key, for one) are registered at
// startup and replaced wherever they appear in a string. A small set of
// patterns additionally catches credential-shaped substrings that arrive in
// upstream error payloads, such as bearer tokens and api-key headers.
package secret
