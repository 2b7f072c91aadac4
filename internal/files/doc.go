// Package files provides file system operations and discovery utilities
// for the season reporting tools.
//
// This package contains two main components:
//
// Discovery: Provides file discovery operations over a dataset directory,
// such as listing candidate table files and locating the well-known season
// input tables. It also includes a utility for finding the latest file.
//
// Manager: Provides basic file management operations such as checking file
// existence, ensuring directories exist, and taking stock of the report
// artifacts a run produced. Relative paths resolve against the configured
// data layout to maintain portability.
//
// Example usage:
//
//	// Create a discovery instance
//	discovery := files.NewDiscovery("/path/to/data")
//
//	// Locate the season input tables
//	tables, err := discovery.FindSeasonTables("input")
//
//	// Create a manager instance
//	manager := files.NewManager(paths)
//
//	// Check if a table exists
//	if manager.FileExists("input/games.csv") {
//	    // Process file
//	}
package files
