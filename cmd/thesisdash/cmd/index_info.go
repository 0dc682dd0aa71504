package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/thesisdash/internal/index"
	"github.com/Aman-CERP/thesisdash/internal/output"
)

// IndexInfoOutput is the JSON form of `index info`.
type IndexInfoOutput struct {
	Path          string    `json:"path"`
	TotalPassages int       `json:"total_passages"`
	Terms         int       `json:"terms"`
	Stopwords     int       `json:"stopwords"`
	BuiltAt       time.Time `json:"built_at"`
	SourceFiles   []string  `json:"source_files"`
}

func newIndexInfoCmd() *cobra.Command {
	var (
		jsonOutput bool
		indexPath  string
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about the built index",
		Long: `Read the index file and report when it was built, how many passages
and terms it holds, and which manuscript files contributed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(".")
			if err != nil {
				return err
			}
			if err := overridePath(&p.cfg.Paths.Output, indexPath); err != nil {
				return err
			}

			idx, err := index.Read(p.outputPath())
			if err != nil {
				return err
			}

			info := IndexInfoOutput{
				Path:          p.outputPath(),
				TotalPassages: idx.Meta.TotalPassages,
				Terms:         len(idx.IDF),
				Stopwords:     idx.Meta.Stopwords,
				BuiltAt:       idx.Meta.BuiltAt,
				SourceFiles:   idx.Meta.SourceFiles,
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			out := output.New(cmd.OutOrStdout())
			out.Header("Thesis index")
			out.KeyValue("Path", info.Path)
			out.KeyValue("Built", info.BuiltAt.Local().Format(time.RFC1123))
			out.KeyValue("Passages", info.TotalPassages)
			out.KeyValue("Terms", info.Terms)
			out.KeyValue("Stopwords", info.Stopwords)
			out.KeyValue("Source files", len(info.SourceFiles))
			for _, f := range info.SourceFiles {
				out.Status("", f)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&indexPath, "output", "", "Index file to read (overrides paths.output)")

	return cmd
}
