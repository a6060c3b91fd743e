package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/htmlcheck/internal/configloader"
	"github.com/yaklabco/htmlcheck/pkg/lint"
	"github.com/yaklabco/htmlcheck/pkg/validate"
)

type elementsFlags struct {
	json    bool
	builtin bool
}

// elementInfo represents a vocabulary entry in JSON output.
type elementInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func newElementsCommand() *cobra.Command {
	flags := &elementsFlags{}

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the known HTML elements",
		Long: `List the element vocabulary used to classify tags. Void elements never
take a closing tag; paired elements must be closed in order. Elements added
under "elements" in the configuration are included unless --builtin is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vocab, err := elementsVocabulary(cmd, flags.builtin)
			if err != nil {
				return err
			}
			if flags.json {
				return writeElementsJSON(cmd.OutOrStdout(), vocab.Elements())
			}
			return writeElementsText(cmd.OutOrStdout(), vocab.Elements())
		},
	}

	cmd.Flags().BoolVar(&flags.json, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&flags.builtin, "builtin", false, "ignore elements added by configuration")

	return cmd
}

func elementsVocabulary(cmd *cobra.Command, builtin bool) (*validate.Vocabulary, error) {
	if builtin {
		return validate.DefaultVocabulary(), nil
	}

	ctx := commandContext(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return lint.VocabularyFor(loaded.Config), nil
}

func elementKind(element validate.Element) string {
	if element.Void {
		return "void"
	}
	return "paired"
}

func writeElementsText(w io.Writer, elements []validate.Element) error {
	for _, element := range elements {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", element.Name, elementKind(element)); err != nil {
			return fmt.Errorf("write elements: %w", err)
		}
	}
	return nil
}

func writeElementsJSON(w io.Writer, elements []validate.Element) error {
	infos := make([]elementInfo, 0, len(elements))
	for _, element := range elements {
		infos = append(infos, elementInfo{Name: element.Name, Kind: elementKind(element)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding elements: %w", err)
	}
	return nil
}
