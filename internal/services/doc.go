// Package services orchestrates a report run: validate the configuration,
// scan the directory, build the table and hand it to each output sink.
package services
