// Package cmd implements the command-line interface for afro.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/afrorhythm/afro/filesystem"
	"github.com/afrorhythm/afro/inline"
	"github.com/afrorhythm/afro/query"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to run against the catalog")
	inlineCmd.Flags().StringP("track", "t", "", "Criteria for picking a single track from the results")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("play", "p", false, "Record a playback for the picked track")
	inlineCmd.Flags().IntP("limit", "l", 0, "Truncate the result set (0 keeps everything)")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Run a catalog search and print the results for automated consumption.

Track selectors:
  first - first track of the results
  last - last track of the results
  exact=Title - track whose title matches exactly
  index=N - track at index N (starting from 0, clamped)`,
	Example: `  afro inline -q "lagos nights" -j
  afro inline -q amapiano -t first -p`,
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := loadLibrary()
		handleErr(err)

		options := &inline.Options{
			Library: lib,
			Query:   lo.Must(cmd.Flags().GetString("query")),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Play:    lo.Must(cmd.Flags().GetBool("play")),
			Limit:   lo.Must(cmd.Flags().GetInt("limit")),
		}

		if selector := lo.Must(cmd.Flags().GetString("track")); selector != "" {
			kind, value, _ := strings.Cut(selector, "=")
			picker, err := inline.ParseTrackPicker(kind, value)
			handleErr(err)

			options.Picker = mo.Some(picker)
		}

		var out io.Writer = os.Stdout
		if path := lo.Must(cmd.Flags().GetString("output")); path != "" {
			file, err := filesystem.API().Create(path)
			handleErr(err)
			defer func() {
				_ = file.Close()
			}()

			out = file
		}
		options.Out = out

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "track", "artist", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
