package main

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/kelseyhightower/envconfig"
)

// config holds the demo settings. Environment variables with the EASEL_
// prefix set the defaults and command-line flags override them.
type config struct {
	Width      int     `envconfig:"WIDTH" default:"800"`
	Height     int     `envconfig:"HEIGHT" default:"600"`
	PixelRatio float64 `envconfig:"PIXEL_RATIO" default:"1"`
	Backend    string  `envconfig:"BACKEND" default:"auto"`
	Output     string  `envconfig:"OUTPUT" default:"easel.png"`
	Select     bool    `envconfig:"SELECT" default:"true"`
	Debug      bool    `envconfig:"DEBUG" default:"false"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envconfig.Process("easel", &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.PixelRatio <= 0 {
		return fmt.Errorf("invalid pixel ratio %v", c.PixelRatio)
	}
	if c.Output == "" {
		return fmt.Errorf("no output file")
	}
	_, err := parseBackends(c.Backend)
	return err
}

// parseBackends maps a backend name to the preference list given to
// easel.WithBackends. "auto" keeps the default order.
func parseBackends(name string) ([]gputypes.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return nil, nil
	case "vulkan":
		return []gputypes.Backend{gputypes.BackendVulkan}, nil
	case "metal":
		return []gputypes.Backend{gputypes.BackendMetal}, nil
	case "dx12":
		return []gputypes.Backend{gputypes.BackendDX12}, nil
	case "gl", "gles":
		return []gputypes.Backend{gputypes.BackendGL}, nil
	case "software", "noop", "empty":
		return []gputypes.Backend{gputypes.BackendEmpty}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
