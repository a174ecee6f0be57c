// Command bubblesim runs a bubble cluster scenario and reports the result.
//
// Usage:
//
//	bubblesim -scenario file.yaml [-json out.json] [-png out.png] [-svg out.svg]
//
// The scenario file sets the cluster options and lists the commands to
// apply; see testdata/ for examples. After the run, bubblesim prints a
// table of region measures and writes the requested outputs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	scenarioPath := flag.String("scenario", "", "scenario `file` (YAML)")
	jsonPath := flag.String("json", "", "write the final snapshot to `file`")
	pngPath := flag.String("png", "", "render the final cluster to a PNG `file`")
	svgPath := flag.String("svg", "", "render the final cluster to an SVG `file`")
	flag.Parse()
	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*scenarioPath, *jsonPath, *pngPath, *svgPath); err != nil {
		fmt.Fprintln(os.Stderr, "bubblesim:", err)
		os.Exit(1)
	}
}

func run(scenarioPath, jsonPath, pngPath, svgPath string) error {
	sc, err := LoadScenario(scenarioPath)
	if err != nil {
		return err
	}
	log, err := newLogger(sc.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	runner := NewRunner(sc, log)
	if err := runner.Run(sc.Commands); err != nil {
		log.Error("run failed", zap.Error(err))
		return err
	}
	fmt.Print(MeasuresTable(runner.Cluster()))

	if sc.Expect != "" {
		if err := runner.Check(filepath.Join(filepath.Dir(scenarioPath), sc.Expect)); err != nil {
			return err
		}
		log.Info("snapshot matches", zap.String("expect", sc.Expect))
	}
	if jsonPath != "" {
		if err := runner.WriteSnapshot(jsonPath); err != nil {
			return err
		}
	}
	if pngPath != "" {
		if err := RenderPNG(runner.Cluster(), pngPath, sc.Image); err != nil {
			return err
		}
	}
	if svgPath != "" {
		if err := RenderSVG(runner.Cluster(), svgPath, sc.Image); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	var config zap.Config
	if lvl == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Sampling = nil
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
