// Package platform defines the closed set of console platforms gameid can
// identify.
//
// Every extraction is driven by an explicit Tag chosen by the caller; nothing
// in the pipeline sniffs a platform from file content. Parse accepts the
// common aliases users type on the command line (e.g. "megadrive" for
// Genesis) and rejects everything else so a wrong console algorithm is never
// applied to unrelated binary data.
package platform
