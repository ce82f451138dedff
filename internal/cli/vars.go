// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// check, serve
	frameworksFile string
	// check, serve
	breachFile string
	// check
	policyName string
	// check
	interactive bool
	// fetch
	sourceUrls []string
	// fetch
	outFile string
	// fetch
	overwrite bool
	// fetch
	threads int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)
