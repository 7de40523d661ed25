// Package history records the commands run on a document and provides
// undo and redo over the text edits they made.
//
// Every command sent to a document becomes an Entry holding the invocation
// and the edits it produced. Undo pops the newest entry and applies the
// inverse of its edits; the entry below it becomes the most recent command
// again, which is what the repeat tracker observes through MostRecent.
//
// Automatic entries record state changes that are not undoable, such as
// leaving insert mode. They are visible to MostRecent(false) only.
//
// # Gluing
//
// A caller that wants several commands to undo together marks the history
// first and glues it afterwards:
//
//	h.MarkGroupsForGluing()
//	// ... commands ...
//	h.GlueMarkedGroups()
//
// The entries recorded after the mark become one entry whose invocation is
// an execctx.SequenceCommand of their invocations.
package history
