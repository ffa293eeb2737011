package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Ishanpathak1/ghanalytics/internal/policy"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage sampling profiles",
	Long: `List, show, export and validate the sampling profiles that bound how
many repositories and commits an analysis fetches.

Examples:
  # List built-in profiles
  ghanalytics profiles list

  # Show a profile as YAML
  ghanalytics profiles show deep

  # Export a profile to edit it, then use it
  ghanalytics profiles export default my-profile.yaml
  ghanalytics analyze octocat --profile-file my-profile.yaml`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tREPOS\tCOMMITS/REPO\tDESCRIPTION")
		for _, name := range policy.ListProfiles() {
			p := policy.GetProfile(name)
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", p.Name, p.CommitRepos, p.CommitsPerRepo, p.Description)
		}
		return w.Flush()
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a profile as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := policy.Resolve(args[0], "")
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a profile to a YAML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := policy.Resolve(args[0], "")
		if err != nil {
			return err
		}
		if err := policy.SaveProfileToFile(&p, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Profile %s written to %s\n", p.Name, args[1])
		return nil
	},
}

var profilesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := policy.LoadProfileFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Profile %s is valid: %d repositories x %d commits\n", p.Name, p.CommitRepos, p.CommitsPerRepo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd, profilesExportCmd, profilesValidateCmd)
}
