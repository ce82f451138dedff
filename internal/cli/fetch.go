// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"passtrength/internal/breach"
	"passtrength/internal/util"
)

var (
	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Fetch breach password lists and merge them into a local file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchCommand()
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	fetchCmd.Flags().StringArrayVarP(&sourceUrls, "url", "u", nil, "Breach list source URL. May be repeated; JSON arrays and newline-delimited lists are accepted (required)")
	fetchCmd.MarkFlagRequired("url")
	fetchCmd.Flags().StringVarP(&outFile, "out-file", "o", "./breach_top_250.json", "Output file path. Can be absolute or relative.")
	fetchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite any existing files while writing the results.")
	fetchCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of threads to use for the fetch. If omitted or less than 2, defaults to the number of logical processors of the machine.")

	rootCmd.AddCommand(fetchCmd)
}

func fetchCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	abs, err := filepath.Abs(outFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("could not get absolute path of file")
	}

	if !overwrite {
		if _, err := os.Stat(abs); err == nil {
			log.Fatal().Msgf("file %s exists and overwrite flag is not set", abs)
		}
	}

	fetcher := breach.NewFetcher(sourceUrls, threads)
	entries, err := fetcher.Run()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	if err = os.WriteFile(abs, data, 0o644); err != nil {
		return err
	}

	log.Info().Msgf("wrote %d entries to %s", len(entries), abs)
	return nil
}
