package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func wantJSON(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printText(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s)
}

// render prints v as JSON under --json, otherwise the text from format.
func render(cmd *cobra.Command, v any, format func() string) error {
	if wantJSON(cmd) {
		return printJSON(cmd, v)
	}
	printText(cmd, format())
	return nil
}

// loadOverrides reads per-task overrides keyed by task id from a YAML or
// JSON file:
//
//	wp-3:
//	  startDate: "2024-03-11"
//	  lockType: hard
//	wp-4:
//	  durationDays: 2.5
func loadOverrides(path string) (map[string]contract.TaskOverrideInput, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	var out map[string]contract.TaskOverrideInput
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing overrides %s: %w", path, err)
	}
	return out, nil
}
