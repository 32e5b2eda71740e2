package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/solatis/fontfilter/internal/catalog"
	"github.com/solatis/fontfilter/internal/filter"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a profile to a catalog and print the kept records",
	Long: `Apply a filter profile to a catalog and print the kept records as JSON.

Records come from --catalog, the configured catalog file, or the database
named by --db-url. The profile is read from --profile-file, or looked up by
--profile in the database.`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().String("catalog", "", "YAML catalog file")
	filterCmd.Flags().String("profile-file", "", "YAML profile file")
	filterCmd.Flags().String("profile", "", "profile name (in --profile-file or the database)")
	filterCmd.Flags().Bool("soft", false, "force soft mode")
	filterCmd.Flags().Bool("strict", false, "force strict mode")
	filterCmd.MarkFlagsMutuallyExclusive("soft", "strict")
}

type filterOutput struct {
	Profile string         `json:"profile"`
	Mode    string         `json:"mode"`
	Count   int            `json:"count"`
	Records []recordOutput `json:"records"`
	Steps   []stepOutput   `json:"steps,omitempty"`
}

type stepOutput struct {
	Index     int    `json:"index"`
	Condition string `json:"condition"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Applied   bool   `json:"applied"`
}

type recordOutput struct {
	ID         types.RecordID             `json:"id"`
	Name       string                     `json:"name"`
	Attributes map[string][]records.Value `json:"attributes"`
}

func runFilter(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	catalogPath, _ := cmd.Flags().GetString("catalog")
	if catalogPath == "" {
		catalogPath = cfg.Catalog
	}
	profileFile, _ := cmd.Flags().GetString("profile-file")
	profileName, _ := cmd.Flags().GetString("profile")

	var (
		set     *records.Set
		profile *types.Profile
	)
	if catalogPath != "" {
		if set, err = catalog.LoadRecordsFile(catalogPath, records.DefaultSchema()); err != nil {
			return err
		}
	}
	if profileFile != "" {
		profiles, err := catalog.LoadProfilesFile(profileFile)
		if err != nil {
			return err
		}
		if profileName == "" {
			profile = profiles[0]
		} else if profile, err = catalog.NewStatic(nil, profiles...).GetProfileByName(ctx, profileName); err != nil {
			return err
		}
	}

	if set == nil || profile == nil {
		database, store, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()
		if set == nil {
			if set, err = store.LoadRecords(ctx); err != nil {
				return err
			}
		}
		if profile == nil {
			if profileName == "" {
				return fmt.Errorf("--profile or --profile-file required")
			}
			if profile, err = store.GetProfileByName(ctx, profileName); err != nil {
				return err
			}
		}
	}

	if soft, _ := cmd.Flags().GetBool("soft"); soft {
		profile.Mode = types.ModeSoft
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		profile.Mode = types.ModeStrict
	}

	res, err := newEngine(cfg, logger).Apply(profile, set)
	if err != nil {
		return err
	}
	defer res.Set.Release()

	return writeResult(cmd.OutOrStdout(), res)
}

func writeResult(w io.Writer, res filter.Result) error {
	out := filterOutput{
		Profile: res.Profile,
		Mode:    res.Mode,
		Count:   res.Set.Len(),
		Records: make([]recordOutput, 0, res.Set.Len()),
	}
	for _, st := range res.Steps {
		out.Steps = append(out.Steps, stepOutput(st))
	}
	for _, r := range res.Set.Records() {
		p, ok := r.(*records.Pattern)
		if !ok {
			continue
		}
		attrs := make(map[string][]records.Value)
		for _, name := range p.Attributes() {
			attrs[name] = p.Values(name)
		}
		out.Records = append(out.Records, recordOutput{ID: p.ID(), Name: p.Name(), Attributes: attrs})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
