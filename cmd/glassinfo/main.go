// Command glassinfo prints the static tables of the glass scene: effect
// availability per GPU tier, morph target statistics, the scroll sections
// and the detected CPU kernel level.
//
// Usage:
//
//	glassinfo [flags]
//
// Examples:
//
//	glassinfo
//	glassinfo -detail 5
//	glassinfo -config scene.yaml -shapes=false
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-glass/config"
	"github.com/cwbudde/algo-glass/effects"
	"github.com/cwbudde/algo-glass/morph"
)

func main() {
	detail := flag.Int("detail", morph.DefaultDetail, "icosphere subdivision of the morph topology")
	configPath := flag.String("config", "", "scene YAML file (default: probe the user config paths)")
	shapes := flag.Bool("shapes", true, "print morph target statistics for every built-in shape")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: glassinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints effect tiers, morph targets, scroll sections and CPU level.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		if err := cfg.LoadFromFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg.TryLoadDefault()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	w := os.Stdout
	steps := []func() error{
		func() error { return printTiers(w, effects.DefaultRegistry()) },
		func() error { return printSections(w, cfg) },
		func() error { return printCPU(w, cpu.DetectFeatures()) },
	}
	if *shapes {
		steps = append(steps, func() error { return printTargets(w, *detail) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(w)
	}
}

func printTiers(w io.Writer, reg *effects.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Effect\tMin Tier\tToggle\tT0\tT1\tT2\tT3\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "------\t--------\t------\t--\t--\t--\t--\n"); err != nil {
		return err
	}

	for _, name := range reg.Names() {
		e, _ := reg.Lookup(name)
		row := []string{name, fmt.Sprint(e.Capability.MinTier), yesNo(e.Capability.Toggle)}
		for tier := 0; tier <= effects.MaxTier; tier++ {
			row = append(row, yesNo(e.Capability.Supports(tier)))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printSections(w io.Writer, cfg *config.Scene) error {
	sections, err := cfg.ScrollSections()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Section\tOffset\tCamera Z\tCamera Y\tBackground\tFog\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t------\t--------\t--------\t----------\t---\n"); err != nil {
		return err
	}

	last := max(len(sections)-1, 1)
	for i, s := range sections {
		if _, err := fmt.Fprintf(tw, "%s\t%.3f\t%.2f\t%.2f\t%s\t%s\n",
			s.Name,
			float64(i)/float64(last),
			s.CameraZ,
			s.CameraY,
			s.Background.Hex(),
			s.Fog.Hex(),
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printTargets(w io.Writer, detail int) error {
	topo := morph.NewTopology(detail)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Shape\tVertices\tMisses\tMean R\tMin R\tMax R\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t--------\t------\t------\t-----\t-----\n"); err != nil {
		return err
	}

	for _, name := range morph.ShapeNames() {
		t, misses := morph.Project(topo, morph.MustShape(name))
		lo, hi := radiusRange(t.Positions)
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			name, t.Len(), misses, t.MeanRadius(), lo, hi); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func radiusRange(pos []float32) (lo, hi float64) {
	lo, hi = math.Inf(1), 0
	for i := 0; i+2 < len(pos); i += 3 {
		x, y, z := float64(pos[i]), float64(pos[i+1]), float64(pos[i+2])
		r := math.Sqrt(x*x + y*y + z*z)
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	return lo, hi
}

func printCPU(w io.Writer, f cpu.Features) error {
	_, err := fmt.Fprintf(w, "CPU: %s, kernel level %s\n", f.Architecture, kernelLevel(f))
	return err
}

func kernelLevel(f cpu.Features) cpu.SIMDLevel {
	switch {
	case f.ForceGeneric:
		return cpu.SIMDNone
	case f.HasAVX2:
		return cpu.SIMDAVX2
	case f.HasSSE2:
		return cpu.SIMDSSE2
	case f.HasNEON:
		return cpu.SIMDNEON
	default:
		return cpu.SIMDNone
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
