// Command gameid identifies game dumps. Given an explicitly selected
// console and an image file, block device, cue sheet, or mounted disc
// directory, it extracts the release serial from the platform's header
// format, looks it up in the local metadata database, and prints the
// reconciled result as a table, delimited line, or JSON.
package main
