package invdb

var (
	// Version of invdb.
	Version = "v0.1.0"
	// Build timestamp, set by the linker.
	Build = "n/a"
)
