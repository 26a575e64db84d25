// Package mirror provides read-only commands over the snapshot store.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"keygate/internal/domain/mirror"
	"keygate/internal/infrastructure/config"
	"keygate/internal/infrastructure/mirrorstore"
	"keygate/internal/shared/logger"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	env    string
	bucket string
	output string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Inspect the snapshot store",
		Long:  `Print the digital key and permission snapshots kept in the mirror store, or its advisory index.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", mirror.BucketPermissions.String(), "Bucket (digital-keys, permissions)")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", outputYAML, "Output format (json, yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print every snapshot in the bucket",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(store mirror.Store, b mirror.Bucket) error {
					return render(cmd.OutOrStdout(), output, listSnapshots(cmd.Context(), store, b))
				})
			},
		},
		&cobra.Command{
			Use:   "index",
			Short: "Print the bucket index",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(cmd, func(store mirror.Store, b mirror.Bucket) error {
					return render(cmd.OutOrStdout(), output, store.Index(cmd.Context(), b))
				})
			},
		},
	)

	return cmd
}

func withStore(cmd *cobra.Command, fn func(mirror.Store, mirror.Bucket) error) error {
	b, err := mirror.ParseBucket(bucket)
	if err != nil {
		return err
	}
	if output != outputJSON && output != outputYAML {
		return fmt.Errorf("unsupported output format %q", output)
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return fn(mirrorstore.NewFileStore(cfg.Mirror, logger.WithComponent("mirror")), b)
}

// snapshotView is a snapshot with its payload decoded, so yaml output does
// not print raw JSON bytes.
type snapshotView struct {
	ID       uint   `json:"id" yaml:"id"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	FilePath string `json:"file_path" yaml:"file_path"`
	Data     any    `json:"data" yaml:"data"`
}

func listSnapshots(ctx context.Context, store mirror.Store, b mirror.Bucket) []snapshotView {
	snapshots := store.ListAll(ctx, b)

	views := make([]snapshotView, 0, len(snapshots))
	for _, s := range snapshots {
		var data any
		if err := s.Decode(&data); err != nil {
			data = string(s.Data)
		}
		views = append(views, snapshotView{ID: s.ID, Name: s.Name, FilePath: s.Path, Data: data})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].ID != views[j].ID {
			return views[i].ID < views[j].ID
		}
		return views[i].Name < views[j].Name
	})
	return views
}

func render(w io.Writer, format string, v any) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
