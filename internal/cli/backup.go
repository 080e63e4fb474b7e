package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/newn79677-coder/PRACTICE-APP/internal/backup"
	"github.com/newn79677-coder/PRACTICE-APP/internal/config"
)

// NewExportCmd writes the backup document to a file.
func NewExportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export profile, history, leaderboard and questions to a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), *configPath, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "quiz_app_backup.json", "backup file to write")
	return cmd
}

// NewImportCmd merges a backup document into the store.
func NewImportCmd(configPath *string) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge a JSON backup into the persisted state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, in)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "backup file to read")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runExport(ctx context.Context, configPath, out string) error {
	log := newLogger()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.cleanup()

	doc, err := backup.Export(ctx, d.store)
	if err != nil {
		return err
	}
	data, err := backup.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Info().Str("file", out).Msg("backup written")
	return nil
}

func runImport(ctx context.Context, configPath, in string) error {
	log := newLogger()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.cleanup()

	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	if err := backup.Import(ctx, d.store, data, log); err != nil {
		return err
	}
	log.Info().Str("file", in).Msg("backup merged")
	return nil
}
