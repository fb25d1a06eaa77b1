// Package domain defines the core business entities and errors of the task
// service. It has no dependencies on storage or transport details.
package domain
