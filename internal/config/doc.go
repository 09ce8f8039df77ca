// Package config loads client settings from a TOML or YAML file and
// SOULNEST_* environment variables.
//
// Every field is optional; unset fields leave the client defaults alone.
// Environment variables override the file.
package config
