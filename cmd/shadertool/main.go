// shadertool parses raw GLSL files into the engine's shader source
// model, merges them and prints the serialized result. Useful for
// checking how hand-written shader snippets combine before wiring them
// into materials or drawables.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ember-gfx/ember/internal/engine/shader"
)

func main() {
	stageName := flag.String("stage", "fragment", "Shader stage: vertex or fragment")
	variantName := flag.String("variant", "production", "Serialization variant: production or development")
	output := flag.String("o", "", "Output file (default stdout)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	stage, err := parseStage(*stageName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	variant, err := parseVariant(*variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	merged := shader.New(stage)
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		src := shader.New(stage)
		if err := src.LoadRawSource(string(data)); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
			os.Exit(1)
		}
		if !merged.IsCompatible(src) {
			fmt.Fprintf(os.Stderr, "Error: %s is not compatible with the preceding sources\n", path)
			os.Exit(1)
		}
		if src.Version() != shader.VersionUnset {
			merged.SetVersion(src.Version())
		}
		if src.Precision() != shader.PrecisionUnset {
			merged.SetPrecision(src.Precision())
		}
		merged.Merge(src)
	}

	text := merged.GetSource(variant)
	if *output == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*output, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseStage(name string) (shader.Stage, error) {
	switch name {
	case "vertex":
		return shader.Vertex, nil
	case "fragment":
		return shader.Fragment, nil
	}
	return shader.StageUnset, fmt.Errorf("unknown stage %q", name)
}

func parseVariant(name string) (shader.Variant, error) {
	switch name {
	case "production":
		return shader.Production, nil
	case "development":
		return shader.Development, nil
	}
	return shader.Production, fmt.Errorf("unknown variant %q", name)
}

func printUsage() {
	fmt.Println(`shadertool - shader source assembly utility

Usage:
  shadertool [options] <file.glsl> [more.glsl ...]

Options:
  -stage    vertex or fragment (default fragment)
  -variant  production or development (default production)
  -o        write output to a file instead of stdout

Examples:
  shadertool -stage fragment material.glsl
  shadertool -stage vertex -variant development base.glsl effect.glsl
  shadertool -o out.glsl snippet1.glsl snippet2.glsl`)
}
