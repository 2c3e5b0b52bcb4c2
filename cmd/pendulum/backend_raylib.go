//go:build !ebiten

package main

import (
	"github.com/san-kum/pendulum/internal/cli"
	"github.com/san-kum/pendulum/internal/window/rayl"
)

var native = cli.Native{Name: "raylib", Factory: rayl.New}
