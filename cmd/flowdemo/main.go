// Command flowdemo runs named pullflow pipelines and prints what they
// produced, how many elements each pulled from its source and, with
// --metrics, the OpenTelemetry totals its instruments recorded.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lguimbarda/pullflow/internal/config"
	"github.com/lguimbarda/pullflow/internal/logger"
	"github.com/lguimbarda/pullflow/internal/scenario"
)

func main() {
	app := &cli.App{
		Name:  "flowdemo",
		Usage: "run example pullflow pipelines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"FLOWDEMO_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file loaded before reading FLOWDEMO_ variables",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "report format: text or yaml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn, error or disabled",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "record OpenTelemetry metrics and include their totals",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the available scenarios",
				Action: func(c *cli.Context) error {
					return scenario.WriteList(c.App.Writer)
				},
			},
			{
				Name:      "run",
				Usage:     "run scenarios (all of them when no name is given)",
				ArgsUsage: "[NAME...]",
				Action:    runScenarios,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScenarios(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging)
	runner := scenario.NewRunner(cfg, log)
	log.Debug().Str("run_id", runner.RunID()).Strs("scenarios", c.Args().Slice()).Msg("starting")

	reports, err := runner.RunAll(c.Args().Slice())
	if werr := scenario.Write(c.App.Writer, cfg.Output.Format, reports); werr != nil && err == nil {
		err = werr
	}
	return err
}

// loadConfig reads the configuration and applies command-line overrides,
// which take precedence over the file and the environment.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(
		config.WithConfigFile(c.String("config")),
		config.WithEnvFile(c.String("env-file")),
	)
	if err != nil {
		return nil, err
	}

	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("metrics") {
		cfg.Metrics = c.Bool("metrics")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
