package cmd

import (
	"context"
	"fmt"

	"github.com/solatis/fontfilter/internal/catalog"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.yaml>",
	Short: "Load a YAML catalog and profiles into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("profiles", "", "YAML profiles to store")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	profilesPath, _ := cmd.Flags().GetString("profiles")
	if len(args) == 0 && profilesPath == "" {
		return fmt.Errorf("nothing to import: pass a catalog file or --profiles")
	}

	database, store, err := openStore()
	if err != nil {
		return err
	}
	defer database.Close()

	if len(args) == 1 {
		set, err := catalog.LoadRecordsFile(args[0], records.DefaultSchema())
		if err != nil {
			return err
		}
		for _, r := range set.Records() {
			p, ok := r.(*records.Pattern)
			if !ok {
				continue
			}
			if err := store.InsertRecord(ctx, p); err != nil {
				return fmt.Errorf("import %q: %w", p.Name(), err)
			}
		}
		logger.Info("records imported", "file", args[0], "count", set.Len())
	}

	if profilesPath != "" {
		profiles, err := catalog.LoadProfilesFile(profilesPath)
		if err != nil {
			return err
		}
		for _, p := range profiles {
			if err := store.SaveProfile(ctx, p); err != nil {
				return fmt.Errorf("save profile %q: %w", p.Name, err)
			}
		}
		logger.Info("profiles imported", "file", profilesPath, "count", len(profiles))
	}
	return nil
}
