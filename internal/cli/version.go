package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/GrammaTech/gtirb-go/pkg/gtirberrors"
	"github.com/GrammaTech/gtirb-go/pkg/version"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var outputFormats = []string{OutputText, OutputJSON, OutputYAML}

// VersionInfo is the structured output of the version command.
type VersionInfo struct {
	Version string `json:"version" jsonschema:"title=Version,description=Canonical major.minor.patch rendering,pattern=^[0-9]+[.][0-9]+[.][0-9]+$"`
	Major   uint   `json:"major"   jsonschema:"title=Major,minimum=0"`
	Minor   uint   `json:"minor"   jsonschema:"title=Minor,minimum=0"`
	Patch   uint   `json:"patch"   jsonschema:"title=Patch,minimum=0"`
}

// NewVersionInfo returns the [VersionInfo] of this build.
func NewVersionInfo() VersionInfo {
	id := version.Current()

	return VersionInfo{
		Version: version.String,
		Major:   id.Major,
		Minor:   id.Minor,
		Patch:   id.Patch,
	}
}

func GetVersionString() string {
	return version.String
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	var (
		output string
		schema bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version of the gtirb CLI",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if schema {
				return writeVersionSchema(cc.OutOrStdout())
			}

			return writeVersion(cc.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", OutputText,
		fmt.Sprintf("Output format (%s)", strings.Join(outputFormats, ", ")))
	cmd.Flags().BoolVar(&schema, "schema", false, "Print the JSON Schema of the structured output and exit")

	err := cmd.RegisterFlagCompletionFunc("output",
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return outputFormats, cobra.ShellCompDirectiveNoFileComp
		})
	if err != nil {
		panic(err)
	}

	return cmd
}

func writeVersion(w io.Writer, output string) error {
	format := strings.ToLower(output)
	if !slices.Contains(outputFormats, format) {
		return fmt.Errorf("%w: unknown output format %q", gtirberrors.ErrInvalidArguments, output)
	}

	info := NewVersionInfo()

	var (
		out []byte
		err error
	)

	switch format {
	case OutputJSON:
		out, err = json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", gtirberrors.ErrJSONMarshal, err)
		}

		out = append(out, '\n')
	case OutputYAML:
		out, err = yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("%w: %w", gtirberrors.ErrYAMLMarshal, err)
		}
	default:
		out = []byte(info.Version + "\n")
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", gtirberrors.ErrWrite, err)
	}

	return nil
}

func writeVersionSchema(w io.Writer) error {
	r := &jsonschema.Reflector{
		DoNotReference: true,
	}

	s := r.Reflect(&VersionInfo{})

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", gtirberrors.ErrJSONMarshal, err)
	}

	out = append(out, '\n')

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %w", gtirberrors.ErrWrite, err)
	}

	return nil
}
