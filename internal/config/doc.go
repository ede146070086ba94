// Package config loads playground.json, the optional project file read
// by the playground CLI.
//
// A missing file is not an error for the CLI: commands start from New()
// and only call LoadFile when --config is given or playground.json exists
// in the working directory.
//
// Example configuration:
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 8080},
//	  "log": {"level": "debug", "format": "json"},
//	  "metrics": {"namespace": "budget"},
//	  "tracing": {"tracer": "budget-sheet"}
//	}
package config
