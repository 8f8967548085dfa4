// Package tracker owns the ResearchHub document and every write to it.
//
// A Store keeps one Document in a durable slot under DocumentKey. Each
// mutation loads the document, applies one change and saves it back in a
// single slot write, so a failed call leaves the persisted document as it
// was. Calls are serialized by a mutex; the process is the single writer.
//
// Integrity rules enforced here:
//   - ids are unique across projects, tasks and papers
//   - a task always references an existing project; deleting a project
//     deletes its tasks in the same write
//   - status, priority, rating and due date are validated on create and
//     update; values that arrived through Import are kept as they are
package tracker
