package scene_test

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/physics"
	"github.com/san-kum/pendulum/internal/render"
	"github.com/san-kum/pendulum/internal/scene"
)

var _ = Describe("Scene", func() {
	var (
		s   *scene.Scene
		rec *render.Recorder
	)

	BeforeEach(func() {
		s = scene.FromConfig(config.DefaultConfig())
		rec = render.NewRecorder()
	})

	It("builds pendulums in configuration order", func() {
		ps := s.Pendulums()
		Expect(ps).To(HaveLen(2))
		Expect(ps[0].Length).To(Equal(200.0))
		Expect(ps[1].Length).To(Equal(400.0))
		Expect(ps[0].Origin.X).To(Equal(400.0))
	})

	Describe("OnDraw", func() {
		It("clears first, then draws arm and ball per pendulum", func() {
			Expect(s.OnDraw(rec)).To(BeTrue())

			ops := rec.Ops()
			Expect(ops).To(HaveLen(5))
			Expect(ops[0].Kind).To(Equal(render.OpClear))
			Expect(ops[0].Color).To(Equal(render.Background))
			Expect(ops[1].Kind).To(Equal(render.OpLine))
			Expect(ops[2].Kind).To(Equal(render.OpCircle))
			Expect(ops[3].Kind).To(Equal(render.OpLine))
			Expect(ops[4].Kind).To(Equal(render.OpCircle))
		})

		It("draws the position produced by this frame's update", func() {
			shadow := []*physics.Pendulum{
				physics.New(400, 0, 200),
				physics.New(400, 0, 400),
			}

			for frame := 0; frame < 50; frame++ {
				rec.Reset()
				s.OnDraw(rec)
				for _, p := range shadow {
					p.Update()
				}

				ops := rec.Ops()
				Expect(ops[1].B).To(Equal(shadow[0].Position))
				Expect(ops[2].A).To(Equal(shadow[0].Position))
				Expect(ops[3].B).To(Equal(shadow[1].Position))
				Expect(ops[4].A).To(Equal(shadow[1].Position))
			}
		})

		It("counts frames", func() {
			for i := 0; i < 3; i++ {
				s.OnDraw(render.Discard)
			}
			Expect(s.Frame()).To(Equal(3))
		})
	})

	Describe("Tick", func() {
		It("advances state in step with OnDraw", func() {
			other := scene.FromConfig(config.DefaultConfig())
			for i := 0; i < 10; i++ {
				s.Tick()
				other.OnDraw(render.Discard)
			}
			Expect(s.Frame()).To(Equal(10))
			for i, p := range s.Pendulums() {
				Expect(p.Position).To(Equal(other.Pendulums()[i].Position))
			}
		})
	})

	Describe("Run", func() {
		It("stops after the requested number of frames", func() {
			Expect(s.Run(context.Background(), 25, rec, nil)).To(Succeed())
			Expect(s.Frame()).To(Equal(25))
		})

		It("stops when the observer declines", func() {
			err := s.Run(context.Background(), 100, rec, func(frame int) bool {
				return frame < 7
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Frame()).To(Equal(7))
		})

		It("returns the context error when canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(s.Run(ctx, 10, rec, nil)).To(MatchError(context.Canceled))
			Expect(s.Frame()).To(Equal(0))
		})

		It("accepts a nil surface", func() {
			Expect(s.Run(context.Background(), 5, nil, nil)).To(Succeed())
			Expect(s.Frame()).To(Equal(5))
		})
	})

	Describe("degenerate pendulums", func() {
		It("keeps rendering and warns once", func() {
			var buf bytes.Buffer
			s = scene.New(physics.New(400, 0, 0), physics.New(400, 0, 200))
			s.SetLogger(logging.NewText(&buf, slog.LevelInfo))

			for i := 0; i < 5; i++ {
				rec.Reset()
				Expect(s.OnDraw(rec)).To(BeTrue())
				Expect(rec.Ops()).To(HaveLen(5))
			}

			Expect(s.Pendulums()[0].Valid()).To(BeFalse())
			Expect(s.Pendulums()[1].Valid()).To(BeTrue())
			Expect(bytes.Count(buf.Bytes(), []byte("no longer finite"))).To(Equal(1))
		})
	})
})
