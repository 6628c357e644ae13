package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"math"
	"os/signal"
	"path/filepath"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/bnema/lastframes/config"
	"github.com/bnema/lastframes/internal/adapter/extractor/ffmpeg"
	"github.com/bnema/lastframes/internal/adapter/prober/ffprobe"
	htmlreport "github.com/bnema/lastframes/internal/adapter/report/html"
	"github.com/bnema/lastframes/internal/adapter/storage/jsonfile"
	sqlitestore "github.com/bnema/lastframes/internal/adapter/storage/sqlite"
	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/infrastructure/execx"
	"github.com/bnema/lastframes/internal/infrastructure/logger"
	"github.com/bnema/lastframes/internal/port"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(exitValidation)
	}
	logger.SetOutput(os.Stderr, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:         cfg,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isTTY(os.Stderr),
		newProber: func(cfg *config.Config) port.VideoProber {
			return ffprobe.NewProber(cfg.FFprobeBin, execx.Exec{})
		},
		newExtractor: func(cfg *config.Config) port.FrameExtractor {
			return ffmpeg.NewExtractor(cfg.FFmpegBin, execx.Exec{})
		},
		openHistory: openHistory,
		reporter:    htmlreport.NewReporter(),
		lookPath:    execx.LookPath,
	}

	code := a.run(ctx, os.Args)
	stop()
	os.Exit(code)
}

// app holds everything a command needs so tests can swap the external tools.
type app struct {
	cfg          *config.Config
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	interactive  bool
	newProber    func(cfg *config.Config) port.VideoProber
	newExtractor func(cfg *config.Config) port.FrameExtractor
	openHistory  func(cfg *config.Config) (port.HistoryStore, error)
	reporter     port.Reporter
	lookPath     func(name string) error
}

func (a *app) run(ctx context.Context, args []string) int {
	err := a.command().Run(ctx, args)
	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var exitErr cli.ExitCoder
	switch {
	case errors.As(err, &exitErr):
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(a.stderr, msg)
		}
		return exitErr.ExitCode()
	case domain.IsValidation(err):
		fmt.Fprintf(a.stderr, "invalid arguments: %v\n", err)
		return exitValidation
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.stderr, "interrupted")
		return exitFailure
	default:
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitFailure
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "lastframes",
		Usage:     "extract the last frames of videos as images",
		ArgsUsage: "<video>",
		UsageText: "lastframes [options] <video>\nlastframes --all [options]\nlastframes history [--limit N] [--run ID]",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "process every video in --dir",
			},
			&cli.IntFlag{
				Name:    "frames",
				Aliases: []string{"n"},
				Usage:   "number of trailing frames to extract",
				Value:   1,
			},
			&cli.FloatFlag{
				Name:  "buffer",
				Usage: "seconds to step back from the end before selecting frames",
				Value: 0,
			},
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"o"},
				Usage:   "output directory, created if missing (default: next to each video)",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"i"},
				Usage:   "directory scanned by --all",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "image format: png, jpg, bmp or tiff",
				Value:   string(a.cfg.Format),
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "do not ask before processing a large batch",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not record extracted frames",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "write an index.html contact sheet into the output directory",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only print errors",
			},
		},
		Commands: []*cli.Command{
			a.historyCommand(),
		},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return &domain.ValidationError{Message: err.Error()}
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action:         a.extractAction,
	}
}

type extractArgs struct {
	video     string
	all       bool
	frames    int
	buffer    float64
	folder    string
	dir       string
	format    domain.ImageFormat
	yes       bool
	noHistory bool
	report    bool
	quiet     bool
}

func parseExtractArgs(cmd *cli.Command) (extractArgs, error) {
	ea := extractArgs{
		all:       cmd.Bool("all"),
		frames:    int(cmd.Int("frames")),
		buffer:    cmd.Float("buffer"),
		folder:    cmd.String("folder"),
		dir:       cmd.String("dir"),
		yes:       cmd.Bool("yes"),
		noHistory: cmd.Bool("no-history"),
		report:    cmd.Bool("report"),
		quiet:     cmd.Bool("quiet"),
	}

	switch {
	case cmd.NArg() > 1:
		return extractArgs{}, &domain.ValidationError{Message: fmt.Sprintf("expected one video, got %d arguments", cmd.NArg())}
	case cmd.NArg() == 1 && ea.all:
		return extractArgs{}, &domain.ValidationError{Message: "give either a video or --all, not both"}
	case cmd.NArg() == 0 && !ea.all:
		return extractArgs{}, &domain.ValidationError{Message: "give a video or --all"}
	}
	ea.video = cmd.Args().First()

	if ea.frames < 1 {
		return extractArgs{}, &domain.ValidationError{Field: "frames", Message: "must be at least 1"}
	}

	if ea.buffer < 0 || math.IsNaN(ea.buffer) || math.IsInf(ea.buffer, 0) {
		return extractArgs{}, &domain.ValidationError{Field: "buffer", Message: "must be a non-negative number of seconds"}
	}

	format, err := domain.ParseImageFormat(cmd.String("format"))
	if err != nil {
		return extractArgs{}, err
	}
	ea.format = format

	return ea, nil
}

func (a *app) extractAction(ctx context.Context, cmd *cli.Command) error {
	ea, err := parseExtractArgs(cmd)
	if err != nil {
		return err
	}
	if ea.quiet {
		logger.Info.SetOutput(io.Discard)
		logger.Warn.SetOutput(io.Discard)
	}

	videos, err := a.selectVideos(ea)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return cli.Exit(fmt.Sprintf("no videos found in %s", ea.dir), exitFailure)
	}

	if ea.all && len(videos) > a.cfg.ConfirmThreshold && !ea.yes {
		ok, err := confirm(a.stdin, a.stderr, fmt.Sprintf("Process %d videos?", len(videos)))
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(a.stderr, "aborted")
			return nil
		}
	}

	if err := a.checkTools(); err != nil {
		return err
	}
	if ea.folder != "" {
		if err := os.MkdirAll(ea.folder, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var history port.HistoryStore
	if !ea.noHistory {
		history, err = a.openHistory(a.cfg)
		if err != nil {
			logger.Warn.Printf("history disabled: %v", err)
			history = nil
		} else {
			defer func() { _ = history.Close() }()
		}
	}

	svc := newService(a, ea, history)
	if a.interactive && !ea.quiet {
		logger.Info.SetOutput(io.Discard)
		svc.SetObserver(newProgressObserver(a.stderr))
	}

	var batch domain.BatchResult
	if ea.all {
		batch = svc.ProcessBatch(ctx, videos, ea.frames)
	} else {
		batch = domain.BatchResult{RunID: svc.RunID(), Videos: []domain.VideoResult{svc.ProcessVideo(ctx, videos[0], ea.frames)}}
	}

	for _, v := range batch.Videos {
		for _, f := range v.Frames {
			fmt.Fprintln(a.stdout, f.OutputPath)
		}
	}

	if ea.report && batch.FrameCount() > 0 {
		a.writeReport(ea, batch)
	}

	if !ea.quiet {
		fmt.Fprintf(a.stderr, "done: %d videos, %d frames, %d failed (run %s)\n",
			len(batch.Videos), batch.FrameCount(), batch.Failed(), batch.RunID)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if batch.Failed() > 0 {
		return cli.Exit("", exitFailure)
	}
	return nil
}

func (a *app) selectVideos(ea extractArgs) ([]string, error) {
	if ea.all {
		return discoverVideos(ea.dir)
	}

	info, err := os.Stat(ea.video)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cli.Exit(fmt.Sprintf("video not found: %s", ea.video), exitFailure)
		}
		return nil, fmt.Errorf("stat video: %w", err)
	}
	if info.IsDir() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("%s is a directory, use --all --dir %s", ea.video, ea.video)}
	}
	return []string{ea.video}, nil
}

// checkTools fails early when ffprobe or ffmpeg cannot be found.
func (a *app) checkTools() error {
	tools := []struct{ bin, env string }{
		{a.cfg.FFprobeBin, "FFPROBE_BIN"},
		{a.cfg.FFmpegBin, "FFMPEG_BIN"},
	}
	for _, tool := range tools {
		if err := a.lookPath(tool.bin); err != nil {
			return cli.Exit(fmt.Sprintf("%s not found, install it or set %s: %v", tool.bin, tool.env, err), exitFailure)
		}
	}
	return nil
}

func (a *app) writeReport(ea extractArgs, batch domain.BatchResult) {
	dir := ea.folder
	if dir == "" {
		dir = filepath.Dir(batch.Videos[0].VideoPath)
	}
	path, err := a.reporter.Write(dir, batch)
	if err != nil {
		logger.Error.Printf("report: %v", err)
		return
	}
	if !ea.quiet {
		fmt.Fprintf(a.stderr, "report: %s\n", path)
	}
}

func openHistory(cfg *config.Config) (port.HistoryStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if cfg.HistoryBackend == config.HistoryJSON {
		return jsonfile.NewStore(cfg.DataDir)
	}
	return sqlitestore.NewStore(cfg.DataDir)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
