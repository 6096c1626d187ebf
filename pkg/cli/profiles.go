package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gethavoc/havoc/pkg/chaos"
)

var profilesJSON bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in chaos profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles := chaos.ListProfiles()

		if profilesJSON {
			data, err := json.MarshalIndent(profiles, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		for _, p := range profiles {
			fmt.Printf("%-14s %s\n", p.Name, p.Description)
		}
		return nil
	},
}

func init() {
	profilesCmd.Flags().BoolVar(&profilesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(profilesCmd)
}
