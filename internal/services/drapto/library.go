package drapto

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	draptolib "github.com/five82/drapto"
)

// Client encodes one input into outputDir and returns the written path.
type Client interface {
	Encode(ctx context.Context, inputPath, outputDir string) (string, error)
}

// Library implements Client using the Drapto Go library directly. Encoder
// events are forwarded to the logger.
type Library struct {
	logger *slog.Logger
}

// NewLibrary constructs a Library client. A nil logger drops encoder events.
func NewLibrary(logger *slog.Logger) *Library {
	return &Library{logger: logger}
}

// Encode encodes a video file using the Drapto library. Drapto always writes
// <stem>.mkv into outputDir.
func (l *Library) Encode(ctx context.Context, inputPath, outputDir string) (string, error) {
	if inputPath == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return "", errors.New("output directory required")
	}

	encoder, err := draptolib.New(draptolib.WithResponsive())
	if err != nil {
		return "", err
	}

	var rep draptolib.Reporter
	if l.logger != nil {
		rep = newLogReporter(l.logger)
	}
	if _, err := encoder.EncodeWithReporter(ctx, inputPath, outputDir, rep); err != nil {
		return "", err
	}
	return OutputPath(inputPath, outputDir), nil
}

// OutputPath returns where Drapto writes the encode of inputPath.
func OutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(strings.TrimSpace(outputDir), stem+".mkv")
}

var _ Client = (*Library)(nil)
