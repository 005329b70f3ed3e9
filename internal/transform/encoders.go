package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reclaim/internal/media/ffprobe"
	"reclaim/internal/services"
	"reclaim/internal/services/drapto"
	"reclaim/internal/services/process"
)

// FFmpegEncoder runs an external ffmpeg-compatible binary:
//
//	<binary> -hide_banner -nostdin -i <source> <codec flags...> -y <target>
type FFmpegEncoder struct {
	Spawner    process.Spawner
	Binary     string
	CodecFlags []string
}

func (e *FFmpegEncoder) Name() string { return "ffmpeg" }

func (e *FFmpegEncoder) Encode(ctx context.Context, source, target string) error {
	spawner := e.Spawner
	if spawner == nil {
		spawner = process.Exec{}
	}
	args := make([]string, 0, len(e.CodecFlags)+7)
	args = append(args, "-hide_banner", "-nostdin", "-i", source)
	args = append(args, e.CodecFlags...)
	args = append(args, "-y", target)

	result, err := spawner.Run(ctx, e.Binary, args...)
	if err != nil {
		return services.Wrap(services.ErrProcess, "transcode", "run encoder", e.Binary, err)
	}
	if !result.Success() {
		return processFailure(e.Binary, result)
	}
	return nil
}

// DraptoEncoder encodes in-process through the Drapto library. Drapto picks
// the output name itself, so the written file is moved to target when the
// two differ.
type DraptoEncoder struct {
	Client drapto.Client
}

func (e *DraptoEncoder) Name() string { return "drapto" }

func (e *DraptoEncoder) Encode(ctx context.Context, source, target string) error {
	written, err := e.Client.Encode(ctx, source, filepath.Dir(target))
	if err != nil {
		return services.Wrap(services.ErrProcess, "transcode", "drapto encode", source, err)
	}
	if written != target {
		if err := os.Rename(written, target); err != nil {
			return services.Wrap(services.ErrIO, "transcode", "move drapto output", written, err)
		}
	}
	return nil
}

// ProbeValidator requires the artifact to be a playable video according to
// ffprobe.
type ProbeValidator struct {
	Spawner process.Spawner
	Binary  string
}

func (v *ProbeValidator) Validate(ctx context.Context, path string) error {
	result, err := ffprobe.Inspect(ctx, v.Spawner, v.Binary, path)
	if err != nil {
		return err
	}
	if err := result.CheckPlayable(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

var (
	_ Encoder   = (*FFmpegEncoder)(nil)
	_ Encoder   = (*DraptoEncoder)(nil)
	_ Validator = (*ProbeValidator)(nil)
)
