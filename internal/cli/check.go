// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"passtrength/internal/breach"
	"passtrength/internal/policy"
	"passtrength/internal/report"
	"passtrength/internal/strength"
	"passtrength/internal/util"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [PASSWORD]",
		Short: "Evaluate a password against the entropy model, breach list and active policy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) > 0 {
				password = args[0]
			}
			return checkCommand(password)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	checkCmd.Flags().StringVarP(&policyName, "policy", "p", "", "Policy name to evaluate against. Unknown names fall back to the catalog default")
	checkCmd.Flags().StringVarP(&frameworksFile, "frameworks", "f", "frameworks.json", "Policy frameworks file path")
	checkCmd.Flags().StringVarP(&breachFile, "breach", "b", "", "Breach list file path. Defaults to the embedded top-250 list")
	checkCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode.")

	rootCmd.AddCommand(checkCmd)
}

func checkCommand(password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	catalog := policy.LoadFile(frameworksFile)
	if warning := catalog.Warning(); warning != "" {
		log.Warn().Msg(warning)
	}
	if policyName != "" {
		// Unknown selectors are silently ignored; the default stays active.
		catalog.Select(policyName)
	}

	breaches := loadBreachIndex()

	if interactive {
		log.Info().Msgf("Running interactive session. ^C to exit")
		if err := runInteractiveSession(catalog, breaches); err != nil {
			if err.Error() == "^C" || err.Error() == "^D" {
				log.Info().Msgf("Goodbye")
			} else {
				log.Error().Err(err).Msgf("Error during interactive session")
			}
			// No return to avoid the default cobra error message
			return nil
		}
		return nil
	}

	fmt.Println(evaluate(password, catalog, breaches))
	return nil
}

func loadBreachIndex() *breach.Index {
	if breachFile != "" {
		return breach.LoadFile(breachFile)
	}
	return breach.Default()
}

// evaluate runs one full pass: entropy metrics, policy checks, breach
// lookup, and the rendered report.
func evaluate(password string, catalog *policy.Catalog, breaches *breach.Index) string {
	name, current := catalog.Current()
	ent := strength.Estimate(password)

	return report.Build(report.Input{
		Metrics:    ent,
		Checks:     policy.Evaluate(password, ent, current),
		PolicyName: name,
		Policy:     current,
		Breached:   breaches.Contains(password),
	})
}

func runInteractiveSession(catalog *policy.Catalog, breaches *breach.Index) error {
	names := catalog.Names()
	currentName, _ := catalog.Current()
	cursor := 0
	for i, name := range names {
		if name == currentName {
			cursor = i
		}
	}

	sel := promptui.Select{
		Label:     "Framework / Requirement",
		Items:     names,
		CursorPos: cursor,
	}
	_, chosen, err := sel.Run()
	if err != nil {
		return err
	}
	catalog.Select(chosen)

	name, current := catalog.Current()
	ok := name != ""
	fmt.Println(policy.Describe(name, current, ok))

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
	}

	for {
		password, err := prompt.Run()
		if err != nil {
			return err
		}

		fmt.Println(evaluate(password, catalog, breaches))
	}
}
