// Package config handles loading and parsing the dexdash configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dexdash/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. DEXDASH_USERNAME and DEXDASH_PASSWORD override the file
//
// # TOML Format
//
//	username = "someone@example.com"
//	password = "..."
//	region = "us"            # or "ous" outside the US
//	base_url = ""            # overrides region
//	poll_seconds = 60
//	request_timeout_seconds = 20
//	minutes = 200            # 1..1440
//	max_count = 40           # 1..288
//	low_threshold = 76
//	log_file = "~/.local/state/dexdash/dexdash.log"
//	listen_addr = ""         # e.g. "127.0.0.1:9110" enables the status API
//
// All fields are optional. Tilde expansion is performed for log_file.
// minutes and max_count are clamped into the provider's ranges; poll_seconds
// has a floor of 5.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, and unknown regions. A missing file is
// not an error. Missing credentials are not an error either; the share client
// reports them as AccountError on first use so the dashboard can show why it
// has no data.
package config
