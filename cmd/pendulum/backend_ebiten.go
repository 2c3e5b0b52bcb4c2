//go:build ebiten

package main

import (
	"github.com/san-kum/pendulum/internal/cli"
	"github.com/san-kum/pendulum/internal/window/ebit"
)

// Built with -tags ebiten; raylib and ebiten each bundle GLFW and cannot be
// linked into the same binary.
var native = cli.Native{Name: "ebiten", Factory: ebit.New}
