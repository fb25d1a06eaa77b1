// Package api handles incoming HTTP requests, request validation and response
// formatting for the task service. It acts as an adapter between HTTP clients
// and the service layer, translating HTTP concerns to task operations.
package api
