package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// execute runs the root command in-process with args and returns what it wrote.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores flag defaults between in-process runs.
func resetFlags() {
	configFile = ""
	servePort, serveMigrate = 0, false
	migrateDatabaseURL = ""
	forecastInput, forecastWeeks, forecastLift, forecastTarget, forecastNow, forecastJSON = "", 8, 0, 0, "", false
	atsResume, atsKeywords, atsJob, atsPosting, atsURL, atsJSON = "", nil, "", "", "", false

	if f := rootCmd.PersistentFlags().Lookup("config"); f != nil {
		f.Changed = false
	}
	names := []string{"port", "migrate", "db-url", "in", "weeks", "lift", "target", "now", "json", "resume", "keywords", "job", "posting", "posting-url"}
	for _, cmd := range []*cobra.Command{serveCmd, migrateCmd, forecastCmd, atsCmd} {
		for _, name := range names {
			if f := cmd.Flags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
	}
}
