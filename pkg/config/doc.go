// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each component of the relay declares its own Config struct with `env`
// tags and loads it independently; there is no central configuration tree.
package config
