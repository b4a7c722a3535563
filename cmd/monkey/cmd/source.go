package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// source is one unit of input with the name used in diagnostics.
type source struct {
	name string
	text string
}

// readSources returns the -f file when given, otherwise one source per
// argument, otherwise stdin. "-f -" also reads stdin.
func readSources(cmd *cobra.Command, file string, args []string) ([]source, error) {
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("--file and source arguments are mutually exclusive")
	case file == "-":
		return readStdin(cmd)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		return []source{{name: file, text: string(data)}}, nil
	case len(args) > 0:
		sources := make([]source, 0, len(args))
		for _, arg := range args {
			sources = append(sources, source{text: arg})
		}
		return sources, nil
	}
	return readStdin(cmd)
}

func readStdin(cmd *cobra.Command) ([]source, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return []source{{name: "<stdin>", text: string(data)}}, nil
}
