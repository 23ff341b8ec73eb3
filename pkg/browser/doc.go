// Package browser defines the messages a folder-browser dialog sends back to
// the form that opened it.
//
// Messages form a closed set of variants ([FolderSelected], [DialogClosed]).
// Raw payloads are validated by [Decode] before anything trusts them, and
// [Channel] only ever carries validated messages.
package browser
