// Package config loads coolctl's TOML configuration.
//
// # Configuration Discovery
//
// Load uses the given path, or ~/.config/coolctl/config.toml when empty. A
// missing file is not an error: defaults are used so coolctl works against a
// local simulator without any setup. Empty fields also fall back to defaults.
//
// # Default Values
//
//   - api_url: http://127.0.0.1:8080
//   - poll_interval: 3s
//   - credential_path: ~/.config/coolctl/credential.toml
//   - log_file: ~/.local/state/coolctl/coolctl.log
//   - log_level: info
//   - presets: c = Cool 22°C, o = Off
//
// # TOML Format
//
//	api_url = "http://192.168.1.50:8080"
//	poll_interval = "3s"
//
//	[[presets]]
//	key = "c"
//	label = "Cool 22°C"
//	[presets.intervals]
//	mode = "cooling"
//	setpoint = 22
//
// Configured presets replace the defaults. Each key must be a single,
// unique character outside ReservedKeys; a preset without intervals is the
// off schedule.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, invalid durations
// and malformed presets. Paths starting with ~ are expanded.
package config
