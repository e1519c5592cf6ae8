package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/geodx/internal/config"
	"github.com/taigrr/geodx/pkg/models"
	"github.com/taigrr/geodx/pkg/render"
	"github.com/taigrr/geodx/pkg/scene"
)

// newScene builds the scene from cfg and applies the mesh spin and
// initial transform flags.
func newScene(cfg *config.Config, log *zap.Logger) (*scene.Scene, error) {
	opts, err := cfg.SceneOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = log

	s, err := scene.New(opts)
	if err != nil {
		return nil, err
	}

	if *spin != 0 {
		s.RotateMesh(models.AxisY, *spin)
	}
	if *transform != "" && !s.ApplyRemote(*transform) {
		return nil, fmt.Errorf("invalid -transform value %q", *transform)
	}
	return s, nil
}

// newRasterizer creates a rasterizer configured from the render section.
func newRasterizer(cfg *config.Config, fb *render.Framebuffer) (*render.Rasterizer, error) {
	r := render.NewRasterizer(fb)
	if err := cfg.Rasterizer(r); err != nil {
		return nil, err
	}
	return r, nil
}
