package main

import (
	"os"
	"path/filepath"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultHome is the directory holding the database and the keys.
func defaultHome() string {
	return env("DESCROW_HOME", filepath.Join(os.Getenv("HOME"), ".descrow"))
}
