// Package config resolves runtime settings for the inscrito CLI.
//
// Resolution order, later wins: built-in defaults, an optional YAML file,
// then INSCRITO_* environment variables.
package config
