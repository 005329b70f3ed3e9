package drapto

import (
	"context"
	"log/slog"

	draptolib "github.com/five82/drapto"
)

// progressStep is the percentage granularity of encode progress logging.
const progressStep = 10

// logReporter adapts Drapto reporter events to structured log lines.
// Progress is logged at debug level in progressStep increments.
type logReporter struct {
	logger      *slog.Logger
	lastPercent int
}

func newLogReporter(logger *slog.Logger) *logReporter {
	return &logReporter{logger: logger.With(slog.String("component", "drapto")), lastPercent: -progressStep}
}

func (r *logReporter) Hardware(s draptolib.HardwareSummary) {
	r.logger.Debug("encoder host", slog.String("hostname", s.Hostname))
}

func (r *logReporter) Initialization(s draptolib.InitializationSummary) {
	r.logger.Info("encode starting",
		slog.String("input", s.InputFile),
		slog.String("output", s.OutputFile),
		slog.Any("duration", s.Duration),
		slog.Any("resolution", s.Resolution),
		slog.Any("dynamic_range", s.DynamicRange),
	)
}

func (r *logReporter) StageProgress(s draptolib.StageProgress) {
	r.logger.Debug("encode stage", slog.String("stage", s.Stage), slog.String("message", s.Message))
}

func (r *logReporter) CropResult(s draptolib.CropSummary) {
	r.logger.Debug("crop detection", slog.String("message", s.Message), slog.Any("crop", s.Crop), slog.Bool("required", s.Required))
}

func (r *logReporter) EncodingConfig(s draptolib.EncodingConfigSummary) {
	r.logger.Debug("encoding config",
		slog.Any("encoder", s.Encoder),
		slog.Any("preset", s.Preset),
		slog.Any("quality", s.Quality),
		slog.Any("audio_codec", s.AudioCodec),
	)
}

func (r *logReporter) EncodingStarted(totalFrames uint64) {
	r.lastPercent = -progressStep
	r.logger.Debug("encoding started", slog.Uint64("total_frames", totalFrames))
}

func (r *logReporter) EncodingProgress(s draptolib.ProgressSnapshot) {
	percent := int(float64(s.Percent))
	if percent < r.lastPercent+progressStep {
		return
	}
	r.lastPercent = percent - percent%progressStep
	r.logger.Debug("encoding progress",
		slog.Int("percent", r.lastPercent),
		slog.Any("fps", s.FPS),
		slog.Any("eta", s.ETA),
	)
}

func (r *logReporter) ValidationComplete(s draptolib.ValidationSummary) {
	level := slog.LevelDebug
	if !s.Passed {
		level = slog.LevelWarn
	}
	r.logger.Log(context.Background(), level, "encode validation", slog.Bool("passed", s.Passed), slog.Int("steps", len(s.Steps)))
}

func (r *logReporter) EncodingComplete(s draptolib.EncodingOutcome) {
	r.logger.Info("encode complete",
		slog.String("output", s.OutputPath),
		slog.Int64("original_bytes", int64(s.OriginalSize)),
		slog.Int64("encoded_bytes", int64(s.EncodedSize)),
		slog.Any("elapsed", s.TotalTime),
	)
}

func (r *logReporter) Warning(message string) {
	r.logger.Warn("drapto warning", slog.String("message", message))
}

func (r *logReporter) Error(e draptolib.ReporterError) {
	r.logger.Warn("drapto error",
		slog.String("title", e.Title),
		slog.String("message", e.Message),
		slog.String("suggestion", e.Suggestion),
	)
}

func (r *logReporter) OperationComplete(message string) {
	r.logger.Debug("drapto operation complete", slog.String("message", message))
}

func (r *logReporter) BatchStarted(s draptolib.BatchStartInfo) {
	r.logger.Debug("drapto batch started", slog.Any("total_files", s.TotalFiles))
}

func (r *logReporter) FileProgress(s draptolib.FileProgressContext) {
	r.logger.Debug("drapto file progress", slog.Any("current", s.CurrentFile), slog.Any("total", s.TotalFiles))
}

func (r *logReporter) BatchComplete(s draptolib.BatchSummary) {
	r.logger.Debug("drapto batch complete", slog.Any("successful", s.SuccessfulCount), slog.Any("total", s.TotalFiles))
}

var _ draptolib.Reporter = (*logReporter)(nil)
