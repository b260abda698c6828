// Command genstats runs the level generator headless and prints how often
// each platform kind, hazard and pickup appears at a given score.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/ecs/system"
	"github.com/milk9111/doodler/prefabs"
)

func main() {
	rows := flag.Int("rows", 10000, "number of rows to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	linear := flag.Bool("linear", false, "ignore the difficulty script")
	flag.Parse()

	scores := []int{0, 1000, 2500, 5000}
	if flag.NArg() > 0 {
		scores = scores[:0]
		for _, arg := range flag.Args() {
			var s int
			if _, err := fmt.Sscanf(arg, "%d", &s); err != nil {
				log.Fatalf("genstats: bad score %q", arg)
			}
			scores = append(scores, s)
		}
	}

	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Fatal(err)
	}
	genSpec, err := prefabs.LoadGeneratorSpec()
	if err != nil {
		log.Fatal(err)
	}

	var curve system.DifficultyCurve = system.LinearDifficulty{SaturateAt: genSpec.Difficulty.SaturateAt}
	if !*linear {
		if curve, err = system.LoadScriptDifficulty(genSpec.Difficulty); err != nil {
			log.Printf("genstats: %v (using linear difficulty)", err)
		}
	}

	factory := entity.NewFactory(prefabs.NewSpecCache(), rand.New(rand.NewPCG(*seed, *seed)))
	gen, err := system.NewGenerator(system.ViewportFromSpec(worldSpec), genSpec, factory, curve)
	if err != nil {
		log.Fatal(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for _, score := range scores {
		stats, err := gen.Sample(*rows, score)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(tw, "score %d\tdifficulty %.2f\trows %d\n", score, gen.Difficulty(score), stats.Rows)
		for _, k := range system.Kinds(stats.Platforms) {
			fmt.Fprintf(tw, "  platform\t%s\t%d\t%.2f%%\n", k, stats.Platforms[k], percent(stats.Platforms[k], stats.Rows))
		}
		for _, k := range system.Kinds(stats.Extras) {
			fmt.Fprintf(tw, "  extra\t%s\t%d\t%.2f%%\n", k, stats.Extras[k], percent(stats.Extras[k], stats.Rows))
		}
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
