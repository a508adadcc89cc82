package cli

import (
	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// emotionCommand creates the emotion render command.
func (c *CLI) emotionCommand() *cobra.Command {
	var (
		opts    pipeline.Options
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "emotion [prompt...]",
		Short: "Render a prompt as an emotion composition",
		Long: `Render a prompt as a composition of shapes driven by the emotions
found in the text. Keywords are matched against seven emotion word sets;
each detected emotion contributes a layer of shapes in its hue range,
scaled by how strongly it scored. Prompts without emotion keywords get a
sparse neutral composition.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Prompt = promptFromArgs(args)
			opts.Mode = pipeline.ModeEmotion
			return c.runRender(cmd, opts, output, noCache)
		},
	}

	bindRenderFlags(cmd, &opts)
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "emotion.png", "output file")
	f.Float64Var(&opts.Density, "density", 0, "shape density multiplier")
	f.BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
