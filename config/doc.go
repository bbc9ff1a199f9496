// Package config loads the YAML configuration of the launchkit command.
//
// Values of the form ${VAR} are replaced with environment variables before
// parsing. Fields left out of the file keep the values from Default.
package config
