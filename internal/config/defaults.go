package config

const (
	defaultConfigPath      = "~/.config/reclaim/config.toml"
	projectConfigName      = "reclaim.toml"
	defaultRoot            = "."
	defaultArchiveSuffix   = ".7z"
	defaultTranscodeEngine = EngineFFmpeg
	defaultOutputExtension = ".webm"
	defaultRenameTargetDir = "by-hash"
	defaultRenameHash      = "sha256"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	defaultLogRetentionDays = 30
)

const (
	EngineFFmpeg = "ffmpeg"
	EngineDrapto = "drapto"

	// draptoOutputExtension is the container Drapto always writes.
	draptoOutputExtension = ".mkv"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Root: defaultRoot,
		},
		Exclude: Exclude{
			Hidden: true,
		},
		Archive: Archive{
			Tools:        []string{"7zz", "7z", "7za"},
			ProbeArgs:    []string{"i"},
			Suffix:       defaultArchiveSuffix,
			Flags:        []string{"-t7z", "-mx=9"},
			DeleteSource: true,
		},
		Transcode: Transcode{
			Engine:          defaultTranscodeEngine,
			Tools:           []string{"ffmpeg"},
			ProbeTools:      []string{"ffprobe"},
			InputExtensions: []string{".mov", ".mp4", ".m4v", ".mkv", ".avi", ".wmv", ".mpg", ".mpeg", ".flv"},
			OutputExtension: defaultOutputExtension,
			CodecFlags: []string{
				"-map", "0:v:0", "-map", "0:a?",
				"-c:v", "libsvtav1", "-crf", "35", "-preset", "8",
				"-c:a", "libopus", "-b:a", "96k",
			},
			Validate:     true,
			DeleteSource: true,
		},
		Rename: Rename{
			TargetDir: defaultRenameTargetDir,
			Hash:      defaultRenameHash,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
