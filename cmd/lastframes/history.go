package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/bnema/lastframes/internal/domain"
)

func (a *app) historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recently extracted frames",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "maximum number of frames to list",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "only list frames of this run id",
			},
		},
		Action: a.historyAction,
	}
}

func (a *app) historyAction(_ context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	if limit < 1 {
		return &domain.ValidationError{Field: "limit", Message: "must be at least 1"}
	}

	store, err := a.openHistory(a.cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	var frames []domain.ExtractedFrame
	if runID := cmd.String("run"); runID != "" {
		frames, err = store.ListByRun(runID)
		if errors.Is(err, domain.ErrNotFound) {
			return cli.Exit(fmt.Sprintf("no frames recorded for run %s", runID), exitFailure)
		}
	} else {
		frames, err = store.ListRecent(limit)
	}
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tFRAME\tOUTPUT\tCHECKSUM")
	for _, f := range frames {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			f.CreatedAt.Local().Format(time.DateTime), shortID(f.RunID), domain.FrameIndexLabel(f.FrameIndex), f.OutputPath, shortID(f.Checksum))
	}
	return tw.Flush()
}

func shortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
