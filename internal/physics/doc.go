// Package physics holds the pendulum model driven by the scene.
//
// A [Pendulum] is advanced with a fixed, unit-time explicit step:
//
//	alpha  = -g * sin(theta) / L
//	omega += alpha
//	theta += omega
//
// after which the ball position is recomputed from the pivot:
//
//	position = origin + (L*sin(theta), L*cos(theta))
//
// Window coordinates grow downward, so theta = 0 hangs straight down.
//
// The step is semi-implicit Euler and makes no accuracy claims. Mass is
// stored and only enters [Pendulum.Energy]; it never affects the motion.
//
// # Degenerate lengths
//
// A zero length divides by zero and the state turns NaN/Inf from the first
// Update on. [New] accepts it anyway; callers can check [Pendulum.Valid].
package physics
