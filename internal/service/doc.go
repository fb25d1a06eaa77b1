// Package service contains the application use cases for tasks. It
// coordinates the task store (defined in internal/store) with event
// emission and keeps HTTP concerns out of the business rules.
//
// The one rule that is not plain CRUD lives here: deleting a task marks it
// incomplete and keeps it in the store.
package service
