/*
Package types defines the persisted data shapes shared by inkpad packages.

# Session

Session is serialized to .session.json. The recent-files list is stored
under the "recentFiles" key; any other string list can be stored in Lists
under its own key.

# Journal

JournalEntry rows are written to the SQLite document journal whenever a
document is opened from or saved to disk.
*/
package types
