// Package key defines the canonical string identifiers for all configuration fields.
package key

// Player keys control the external playback engine.
const (
	PlayerPath                 = "player.path"
	PlayerStereoAuto           = "player.stereo.auto"
	PlayerCompletionPercentage = "player.completion.percentage"
)

// Library keys control local media discovery.
const (
	LibraryPath                = "library.path"
	LibrarySearchLimit         = "library.search.limit"
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Preview keys control on-demand thumbnail extraction.
const (
	PreviewWidth         = "preview.width"
	PreviewWorkers       = "preview.workers"
	PreviewCacheCapacity = "preview.cache.capacity"
	PreviewDebounceMs    = "preview.debounce.ms"
	PreviewTimeoutMs     = "preview.timeout.ms"
)

// Stereo keys control 3D content analysis.
const (
	StereoCache = "stereo.cache"
)

// Logs keys control the diagnostic logging subsystem.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// TUI keys control the terminal user interface.
const (
	TUIScrubStepSeconds = "tui.scrub.step"
)

// CLI keys control command-line presentation behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version.check"
)

// History keys control playback-position persistence.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// IconsVariant selects the visual icon set.
const IconsVariant = "icons.variant"
