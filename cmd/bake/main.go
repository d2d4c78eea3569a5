// Command bake imports a model and writes its collision polyhedra, skeleton and
// animations to a bundle the game can load without raylib's importers.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gamecore/internal/assets"
	"gamecore/internal/bake"
	"gamecore/internal/config"
	"gamecore/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configDir := flag.String("config", ".", "directory holding gamecore.json")
	out := flag.String("out", "", "bundle path (default <bake.outputDir>/<model>.bake)")
	noAnims := flag.Bool("no-animations", false, "skip skeleton and animations")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] model.glb\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	modelPath := flag.Arg(0)

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.SetupWithGraylog(cfg.LogLevel, cfg.Graylog, os.Stderr); err != nil {
		logging.Logger.Warn().Err(err).Msg("Graylog disabled")
	}
	log := logging.For("bake")

	// Model loading uploads meshes, so raylib needs a (hidden) window.
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(1, 1, "bake")
	defer rl.CloseWindow()
	defer assets.Unload()

	bundle, err := buildBundle(modelPath, cfg, !*noAnims)
	if err != nil {
		log.Error().Err(err).Str("model", modelPath).Msg("Bake failed")
		os.Exit(1)
	}

	dest := outputPath(modelPath, *out, cfg.Bake.OutputDir)
	if err := bake.WriteFile(dest, bundle); err != nil {
		log.Error().Err(err).Str("out", dest).Msg("Write failed")
		os.Exit(1)
	}

	log.Info().
		Str("model", modelPath).
		Str("out", dest).
		Int("polyhedra", len(bundle.Polyhedra)).
		Bool("skeleton", bundle.Armature != nil).
		Int("animations", len(bundle.Animations)).
		Msg("Baked")
}

func buildBundle(modelPath string, cfg config.Config, withAnimations bool) (bake.Bundle, error) {
	log := logging.For("bake")
	bundle := bake.NewBundle(filepath.Base(modelPath))
	name := modelName(modelPath)

	polys, err := assets.LoadCollision(modelPath)
	if err != nil {
		return bake.Bundle{}, err
	}
	for i, p := range polys {
		b := p.Bounds()
		log.Debug().
			Int("mesh", i).
			Int("faces", len(p.Faces)).
			Float32("sizeX", b.Max.X-b.Min.X).
			Float32("sizeY", b.Max.Y-b.Min.Y).
			Float32("sizeZ", b.Max.Z-b.Min.Z).
			Msg("Built polyhedron")
		bundle.Polyhedra = append(bundle.Polyhedra, bake.FromPolyhedron(fmt.Sprintf("%s/%d", name, i), p))
	}

	if !withAnimations {
		return bundle, nil
	}
	arm, remap, err := assets.LoadSkeleton(modelPath)
	switch {
	case errors.Is(err, assets.ErrNoSkeleton):
		log.Info().Str("model", modelPath).Msg("No skeleton, skipping animations")
		return bundle, nil
	case err != nil:
		return bake.Bundle{}, err
	}
	bundle.Armature = bake.FromArmature(arm)
	for _, anim := range assets.LoadAnimations(modelPath, arm, remap, cfg.Animation.DefaultTicksPerSecond) {
		log.Debug().Str("animation", anim.Name).Float32("seconds", anim.Seconds()).Msg("Baked animation")
		bundle.Animations = append(bundle.Animations, bake.FromAnimation(anim))
	}
	return bundle, nil
}

func modelName(modelPath string) string {
	base := filepath.Base(modelPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputPath picks the bundle destination: the -out flag wins, otherwise the model's
// name under dir.
func outputPath(modelPath, out, dir string) string {
	if out != "" {
		return out
	}
	return filepath.Join(dir, modelName(modelPath)+".bake")
}
