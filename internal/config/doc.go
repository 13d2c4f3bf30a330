// Package config loads artifactbuilder.yaml. Command-line flags override the
// loaded values in the CLI layer.
package config
