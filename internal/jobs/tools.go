package jobs

import (
	"reclaim/internal/config"
	"reclaim/internal/deps"
)

// ArchiverTool describes the archiver lookup.
func ArchiverTool(cfg *config.Config) deps.Tool {
	return deps.Tool{
		Name:        "archiver",
		Description: "Required for archive",
		Candidates:  cfg.Archive.Tools,
		ProbeArgs:   cfg.Archive.ProbeArgs,
	}
}

// EncoderTool describes the external encoder lookup. It is optional when the
// in-process Drapto engine is selected.
func EncoderTool(cfg *config.Config) deps.Tool {
	return deps.Tool{
		Name:        "ffmpeg",
		Description: "Required for transcode (ffmpeg engine)",
		Candidates:  cfg.Transcode.Tools,
		ProbeArgs:   []string{"-version"},
		Optional:    cfg.Transcode.Engine != config.EngineFFmpeg,
	}
}

// ProbeTool describes the ffprobe lookup used to validate transcodes.
func ProbeTool(cfg *config.Config) deps.Tool {
	return deps.Tool{
		Name:        "ffprobe",
		Description: "Validates transcoded output",
		Candidates:  cfg.Transcode.ProbeTools,
		ProbeArgs:   []string{"-version"},
		Optional:    !cfg.Transcode.Validate,
	}
}

// RequiredTools lists the tools kind needs before it may start.
func RequiredTools(cfg *config.Config, kind Kind) []deps.Tool {
	switch kind {
	case KindArchive:
		return []deps.Tool{ArchiverTool(cfg)}
	case KindTranscode:
		var tools []deps.Tool
		if cfg.Transcode.Engine == config.EngineFFmpeg {
			tools = append(tools, EncoderTool(cfg))
		}
		if cfg.Transcode.Validate {
			tools = append(tools, ProbeTool(cfg))
		}
		return tools
	default:
		return nil
	}
}

// AllTools lists every tool any job may use, for status reporting.
func AllTools(cfg *config.Config) []deps.Tool {
	return []deps.Tool{ArchiverTool(cfg), EncoderTool(cfg), ProbeTool(cfg)}
}

// SearchDirs returns the extra directories probed for kind's tools.
func SearchDirs(cfg *config.Config, kind Kind) []string {
	switch kind {
	case KindArchive:
		return cfg.Archive.SearchDirs
	case KindTranscode:
		return cfg.Transcode.SearchDirs
	default:
		return nil
	}
}
