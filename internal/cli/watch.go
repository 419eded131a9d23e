package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/iconlog/internal/changelog"
	clierrors "github.com/ariel-frischer/iconlog/internal/errors"
	"github.com/ariel-frischer/iconlog/internal/manifest"
	"github.com/ariel-frischer/iconlog/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [manifest]",
	Short: "Re-diff a manifest every time it changes",
	Long: `Watch a manifest file and print the diff and suggested bump each time it
is written. Changes are compared against the manifest as it was when the
watch started, or as committed at --previous-ref. Stop with Ctrl+C.`,
	Example: `  iconlog watch icons.json
  iconlog watch icons.json --previous-ref HEAD`,
	Args: argsRange(0, 1),
	RunE: runWatch,
}

func init() {
	watchCmd.GroupID = GroupManifest
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("previous-ref", "", "Git revision to read the baseline manifest from")
}

func runWatch(cmd *cobra.Command, args []string) error {
	previousRef, _ := cmd.Flags().GetString("previous-ref")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.ManifestPath
	if len(args) == 1 {
		path = args[0]
	}

	var baseline *manifest.Manifest
	if previousRef != "" {
		baseline, err = readManifestAtRef(previousRef, path)
	} else {
		baseline, err = readManifestFile(path)
	}
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchManifest(ctx, cmd, path, baseline, cfg.Plain)
}

// watchManifest prints every update for path until ctx is done.
func watchManifest(ctx context.Context, cmd *cobra.Command, path string, baseline *manifest.Manifest, plain bool) error {
	w, err := watch.New(path, baseline)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "starting watcher")
	}
	defer w.Close()

	updates, err := w.Watch(ctx)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "starting watcher")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)

	for u := range updates {
		stamp := u.At.Format("15:04:05")
		if u.Err != nil {
			fmt.Fprintf(out, "[%s] %v\n", stamp, u.Err)
			continue
		}
		changes := changesOf(u.Diff)
		fmt.Fprintf(out, "[%s] %s -> %s (%s)\n",
			stamp, changelog.FormatSummary(changes, formatOptions(plain)), u.Suggestion.BumpType, u.Suggestion.Reason)
	}
	return nil
}
