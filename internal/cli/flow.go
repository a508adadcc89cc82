package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moodcanvas/moodcanvas/pkg/errors"
	"github.com/moodcanvas/moodcanvas/pkg/pipeline"
)

// flowCommand creates the flow render command.
func (c *CLI) flowCommand() *cobra.Command {
	var (
		opts        pipeline.Options
		output      string
		noCache     bool
		seed        int64
		strokeAlpha int
	)

	cmd := &cobra.Command{
		Use:   "flow [prompt...]",
		Short: "Render a prompt as flowfield line art",
		Long: `Render a prompt as flowfield line art: the prompt's hash picks the
colors and particles trace curved paths through a noise field. The same
prompt and settings always produce the same image. An empty prompt
renders the default field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Prompt = promptFromArgs(args)
			opts.Mode = pipeline.ModeFlow
			// Changed distinguishes an explicit zero from an unset flag.
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}
			if cmd.Flags().Changed("stroke-alpha") {
				opts.StrokeAlpha = &strokeAlpha
			}
			return c.runRender(cmd, opts, output, noCache)
		},
	}

	bindRenderFlags(cmd, &opts)
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "flow.png", "output file")
	f.IntVar(&opts.Particles, "particles", 0, "number of particles")
	f.IntVar(&opts.Steps, "steps", 0, "integration steps per particle")
	f.Float64Var(&opts.StepLen, "step-len", 0, "step length in pixels")
	f.Float64Var(&opts.Scale, "scale", 0, "noise scale (larger is smoother)")
	f.Float64Var(&opts.Twist, "twist", 0, "noise twist factor")
	f.Int64Var(&seed, "seed", pipeline.DefaultSeed, "particle placement seed")
	f.StringVar(&opts.Bounds, "bounds", "", "edge policy: wrap (default), clip")
	f.Float64Var(&opts.StrokeWidth, "stroke-width", 0, "stroke width in pixels")
	f.IntVar(&strokeAlpha, "stroke-alpha", pipeline.DefaultStrokeAlpha, "stroke alpha 0-255")
	f.BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runRender executes the pipeline for opts and writes the PNG to output.
// Shared by the flow and emotion commands.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, output string, noCache bool) error {
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	c.Config.Render.Apply(&opts)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(loggerFromContext(cmd.Context()))
	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %q", opts.Prompt))

	if err := os.WriteFile(output, result.PNG, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	printSuccess("Rendered %s", opts.Mode)
	printPalette(result.Derivation.Palette)
	printStats(len(result.Traces), result.Stats.PointCount, len(result.PNG), result.CacheInfo.RenderHit)
	printFile(output)
	return nil
}
