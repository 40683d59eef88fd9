// Package testinfra starts disposable infrastructure for integration tests.
package testinfra
