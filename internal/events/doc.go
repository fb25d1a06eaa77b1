// Package events provides types and interfaces for publishing task change
// notifications.
//
// Services emit events without knowing which handlers will process them.
// The primary components are:
// - TaskEvent: a change made to a task (created, updated, soft-deleted)
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
// - AuditLogHandler: writes every event to a structured logger
package events
