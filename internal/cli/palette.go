package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
	"github.com/moodcanvas/moodcanvas/pkg/render"
)

// paletteCommand creates the palette inspection command.
func (c *CLI) paletteCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		asJSON  bool
		strip   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "palette [prompt...]",
		Short: "Derive and display the palette for a prompt",
		Long: `Derive the color palette for a prompt without rendering. Shows the
colors as terminal swatches with hex codes, the prompt's seed, and the
detected emotions. Use --strip to also save the palette as a swatch
preview image.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Prompt = promptFromArgs(args)

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			d, err := runner.Derive(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"canonical": d.Canonical,
					"seed":      d.Seed,
					"palette":   d.Palette.HexStrings(),
					"dominant":  d.Dominant,
					"scores":    d.Scores,
					"weights":   d.Weights,
				})
			}

			printPalette(d.Palette)
			printKeyValue("seed", fmt.Sprintf("%d", d.Seed))
			if d.Dominant != "" {
				printKeyValue("dominant", string(d.Dominant))
			} else {
				printKeyValue("dominant", StyleDim.Render("neutral"))
			}

			if strip != "" {
				if err := errors.ValidateOutputPath(strip); err != nil {
					return err
				}
				png, err := render.Strip(d.Palette)
				if err != nil {
					return err
				}
				if err := os.WriteFile(strip, png, 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", strip)
				}
				printFile(strip)
			}

			printNextStep("Render it", fmt.Sprintf("moodcanvas flow %q", opts.Prompt))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.PaletteSize, "colors", 0, "number of palette colors")
	f.StringVar(&opts.Scheme, "scheme", "", "palette scheme: slice (default), harmonic")
	f.BoolVar(&asJSON, "json", false, "output as JSON")
	f.StringVar(&strip, "strip", "", "also save a swatch strip PNG to this path")
	f.BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
