package nmo

// Geometry limits
const (
	maxSamples = 1 << 20 // Maximum trace length in samples
	maxWorkers = 1024    // Maximum gather workers
)

// Stretch mute limits
const (
	maxTaperSamples = 4096 // Longest mute taper in samples
)

// Unit conversion
const (
	msPerSecond = 1000.0
)
