package processor

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"media-uploader/internal/domain/entities"
	"media-uploader/internal/domain/repositories"
)

// FFmpegTranscoder merdivendeki her çözünürlük için HLS playlist + segment
// üretir, sonra master playlist'i yazar. Harici araç tek bloklayan çağrıdır:
// başarı ya da hata, ara sinyal yok.
type FFmpegTranscoder struct {
	FFmpegPath  string
	FFprobePath string
}

func NewFFmpegTranscoder() *FFmpegTranscoder {
	return &FFmpegTranscoder{
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
	}
}

func (t *FFmpegTranscoder) Transcode(ctx context.Context, inputPath, outputDir string, ladder []entities.Rendition) (*repositories.TranscodeOutput, error) {
	if len(ladder) == 0 {
		ladder = entities.DefaultLadder
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	duration, err := t.probeDuration(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	// Kaynak oranı master playlist'teki RESOLUTION için; alınamazsa
	// RESOLUTION yazılmaz, BANDWIDTH tek başına yeterli
	srcWidth, srcHeight, err := t.probeDimensions(ctx, inputPath)
	if err != nil {
		log.Printf("Kaynak çözünürlüğü alınamadı [%s]: %v", inputPath, err)
		srcWidth, srcHeight = 0, 0
	}

	out := &repositories.TranscodeOutput{DurationSeconds: duration}

	for _, r := range ladder {
		playlist := filepath.Join(outputDir, r.Name+".m3u8")
		segmentPattern := filepath.Join(outputDir, r.Name+"_%03d.ts")

		cmd := exec.CommandContext(ctx, t.FFmpegPath,
			"-i", inputPath,
			"-vf", fmt.Sprintf("scale=-2:%d", r.Height),
			"-c:v", "h264",
			"-profile:v", "main",
			"-b:v", r.Bitrate,
			"-maxrate", r.Bitrate,
			"-bufsize", r.Bitrate,
			"-c:a", "aac",
			"-ar", "48000",
			"-sc_threshold", "0",
			"-g", "48",
			"-keyint_min", "48",
			"-hls_time", "6",
			"-hls_playlist_type", "vod",
			"-hls_segment_filename", segmentPattern,
			"-y",
			playlist,
		)

		output, err := cmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("ffmpeg error (%s): %w, output: %s", r.Name, err, string(output))
		}

		segments, err := filepath.Glob(filepath.Join(outputDir, r.Name+"_*.ts"))
		if err != nil {
			return nil, err
		}
		if len(segments) == 0 {
			return nil, fmt.Errorf("hiç segment üretilmedi: %s", r.Name)
		}

		out.RenditionPlaylists = append(out.RenditionPlaylists, playlist)
		out.SegmentPaths = append(out.SegmentPaths, segments...)
	}

	manifest, err := writeMasterPlaylist(outputDir, ladder, srcWidth, srcHeight)
	if err != nil {
		return nil, err
	}
	out.ManifestPath = manifest

	return out, nil
}

func (t *FFmpegTranscoder) probeDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.FFprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		filePath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("duration parse edilemedi: %w", err)
	}
	return duration, nil
}

func (t *FFmpegTranscoder) probeDimensions(ctx context.Context, filePath string) (int, int, error) {
	cmd := exec.CommandContext(ctx, t.FFprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "csv=s=x:p=0",
		filePath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, fmt.Errorf("ffprobe error: %w", err)
	}

	parts := strings.SplitN(strings.TrimSpace(string(out)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("çözünürlük parse edilemedi: %q", out)
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// Adaptive playback için rendition'ları numaralandıran index dosyası.
// RESOLUTION kaynak oranından hesaplanır; ffmpeg scale=-2:h de oranı korur.
func writeMasterPlaylist(outputDir string, ladder []entities.Rendition, srcWidth, srcHeight int) (string, error) {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	sb.WriteString("#EXT-X-VERSION:3\n")
	for _, r := range ladder {
		if srcWidth > 0 && srcHeight > 0 {
			// scale=-2 gibi çift sayıya yuvarlanır
			width := r.Height * srcWidth / srcHeight
			if width%2 != 0 {
				width++
			}
			sb.WriteString(fmt.Sprintf("#EXT-X-STREAM-INF:BANDWIDTH=%d,RESOLUTION=%dx%d\n", r.Bandwidth, width, r.Height))
		} else {
			sb.WriteString(fmt.Sprintf("#EXT-X-STREAM-INF:BANDWIDTH=%d\n", r.Bandwidth))
		}
		sb.WriteString(r.Name + ".m3u8\n")
	}

	path := filepath.Join(outputDir, "master.m3u8")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
