// Package config loads the user's preferences.
//
// Preferences live in a TOML file, by default
// $XDG_CONFIG_HOME/vantage/config.toml. Missing keys keep their defaults and
// a handful of settings can be overridden from the environment. A Watcher
// reports changes to the file so the editor can reload it.
package config
