// Package config loads the viewer configuration.
//
// # Resolution
//
//  1. Defaults (see Default)
//  2. The TOML file, ~/.config/e6viu/config.toml unless a path is given.
//     A missing file is not an error. Empty values keep their defaults.
//  3. Command line flags, applied by the caller.
//
// Credentials are not stored in the file. LoadCredentials reads an optional
// .env file and then E621_TOKEN and E621_USER from the environment.
//
// # TOML Format
//
//	base_url = "https://e621.net"
//	username = "kalka"
//	tags = ["fox"]
//	min_score = 100
//	include_cubs = false
//	renderer = "auto"          # auto, kitty or blocks
//	log_level = "info"         # debug, info, warn or error
//	requests_per_second = 2
//	request_timeout = "30s"
//
// Paths (scratch_path, spinner_cache_path, log_file) support ~ expansion.
package config
