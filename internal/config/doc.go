// Package config loads the git-r configuration file from
// ~/.config/git-r/config.toml. A missing file is not an error; every value
// has a built-in default and command-line flags override the file.
package config
