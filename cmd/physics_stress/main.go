// Stress test of collide-and-slide against random triangle fields of growing size,
// run on one goroutine and then spread over all CPUs.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"gamecore/internal/config"
	"gamecore/internal/logging"
	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sourcegraph/conc/pool"
)

func main() {
	configDir := flag.String("config", ".", "directory holding gamecore.json")
	movers := flag.Int("movers", 1000, "slides per run")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.SetupWithGraylog(cfg.LogLevel, cfg.Graylog, os.Stderr); err != nil {
		logging.Logger.Warn().Err(err).Msg("Graylog disabled")
	}
	log := logging.For("stress")
	log.Info().Int("cpus", runtime.NumCPU()).Int("movers", *movers).Msg("Starting")

	slide := cfg.Physics.SlideConfig()
	radii := rl.Vector3{X: 0.4, Y: 0.9, Z: 0.4}

	// Test various field sizes
	testCounts := []int{100, 500, 1000, 5000, 10000, 50000}

	for _, count := range testCounts {
		r := rand.New(rand.NewPCG(42, uint64(count))) // Consistent results
		world := randomField(r, count)
		moves := randomMoves(r, *movers, fieldSize(count))

		seq, seqHits := runSequential(world, moves, radii, slide)
		par, parHits := runParallel(world, moves, radii, slide, runtime.NumCPU())

		fmt.Printf("%6d triangles: 1 cpu %10v (%4d hits) | %d cpus %10v (%4d hits) | %.1fx\n",
			count, seq.Round(time.Microsecond), seqHits,
			runtime.NumCPU(), par.Round(time.Microsecond), parHits,
			float64(seq)/float64(par))
	}
}

type move struct {
	from, delta rl.Vector3
}

// fieldSize grows with count to keep density reasonable.
func fieldSize(count int) float32 {
	return 50 + float32(count)/100
}

func randomField(r *rand.Rand, count int) *physics.World {
	size := fieldSize(count)
	tris := make([]physics.Triangle, count)
	for i := range tris {
		center := rl.Vector3{
			X: r.Float32()*size - size/2,
			Y: r.Float32()*size - size/2,
			Z: r.Float32()*size - size/2,
		}
		corner := func() rl.Vector3 {
			return rl.Vector3Add(center, rl.Vector3{X: r.Float32()*4 - 2, Y: r.Float32()*4 - 2, Z: r.Float32()*4 - 2})
		}
		tris[i] = physics.NewTriangle(corner(), corner(), corner())
	}
	w := physics.NewWorld()
	w.Add(physics.NewTriangleMesh("field", tris))
	return w
}

func randomMoves(r *rand.Rand, n int, size float32) []move {
	moves := make([]move, n)
	for i := range moves {
		moves[i] = move{
			from:  rl.Vector3{X: r.Float32()*size - size/2, Y: r.Float32()*size - size/2, Z: r.Float32()*size - size/2},
			delta: rl.Vector3{X: r.Float32()*6 - 3, Y: r.Float32()*6 - 3, Z: r.Float32()*6 - 3},
		}
	}
	return moves
}

func runSequential(world *physics.World, moves []move, radii rl.Vector3, cfg physics.SlideConfig) (time.Duration, int) {
	s := physics.NewSlider(cfg)
	start := time.Now()
	hits := 0
	for _, m := range moves {
		if s.Slide(radii, m.from, m.delta, world).Hit {
			hits++
		}
	}
	return time.Since(start), hits
}

// runParallel splits the moves into one chunk per worker; each worker owns a Slider
// because sliders reuse scratch memory.
func runParallel(world *physics.World, moves []move, radii rl.Vector3, cfg physics.SlideConfig, workers int) (time.Duration, int) {
	chunk := (len(moves) + workers - 1) / workers
	p := pool.NewWithResults[int]().WithMaxGoroutines(workers)

	start := time.Now()
	for lo := 0; lo < len(moves); lo += chunk {
		part := moves[lo:min(lo+chunk, len(moves))]
		p.Go(func() int {
			s := physics.NewSlider(cfg)
			hits := 0
			for _, m := range part {
				if s.Slide(radii, m.from, m.delta, world).Hit {
					hits++
				}
			}
			return hits
		})
	}
	hits := 0
	for _, h := range p.Wait() {
		hits += h
	}
	return time.Since(start), hits
}
