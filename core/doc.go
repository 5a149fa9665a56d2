// Package core holds the HTTP error vocabulary shared by handlers and
// modules. Domain packages return or wrap an HTTPError to choose the status
// code and message key a failure is reported with.
package core
