package engine_test

import (
	"context"
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qnet/internal/engine"
	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/metrics"
	"github.com/san-kum/qnet/internal/render"
)

func flush(q *frame.Queue, n int) {
	for i := 0; i < n; i++ {
		q.Flush()
	}
}

func expectEpochValid(ep *graph.Epoch, n int) {
	ExpectWithOffset(1, ep).NotTo(BeNil())
	ExpectWithOffset(1, ep.Entities).To(HaveLen(n))
	for _, c := range ep.Connections {
		ExpectWithOffset(1, c.Source).NotTo(Equal(c.Target))
		ExpectWithOffset(1, c.Source).To(BeNumerically(">=", 0))
		ExpectWithOffset(1, c.Target).To(BeNumerically("<", n))
	}
}

var _ = Describe("Animation", func() {
	var (
		q    *frame.Queue
		rec  *render.Recorder
		anim *engine.Animation
	)

	BeforeEach(func() {
		q = frame.NewQueue()
		rec = render.NewRecorder(1920, 1080)
	})

	Context("when mounted", func() {
		BeforeEach(func() {
			anim = engine.New(graph.Network, rec, q, engine.WithSeed(1), engine.WithCount(50))
			anim.Mount()
		})

		AfterEach(func() {
			anim.Unmount()
		})

		It("generates an epoch of the configured size", func() {
			Expect(anim.Mounted()).To(BeTrue())
			Expect(anim.Running()).To(BeTrue())
			expectEpochValid(anim.Epoch(), 50)
		})

		It("runs one full pipeline per frame in order", func() {
			flush(q, 1)
			ep := anim.Epoch()
			Expect(rec.Ops).To(HaveLen(1 + len(ep.Connections) + ep.Len()))
			Expect(rec.Ops[0].Kind).To(Equal(render.OpRect))
			for i := 1; i <= len(ep.Connections); i++ {
				Expect(rec.Ops[i].Kind).To(Equal(render.OpLine))
			}
			for i := 1 + len(ep.Connections); i < len(rec.Ops); i++ {
				Expect(rec.Ops[i].Kind).To(Equal(render.OpDisc))
			}
		})

		It("keeps network entities inside the surface", func() {
			flush(q, 300)
			Expect(anim.Frames()).To(BeEquivalentTo(300))
			b := anim.Bounds()
			for _, e := range anim.Epoch().Entities {
				Expect(b.Contains(e.Pos)).To(BeTrue())
				Expect(e.Strength).To(BeNumerically(">=", 0.2))
				Expect(e.Strength).To(BeNumerically("<=", 1.0))
			}
		})

		It("never changes adjacency between re-seeds", func() {
			before := anim.Epoch().Clone()
			flush(q, 50)
			Expect(anim.Epoch().Connections).To(Equal(before.Connections))
			Expect(anim.Epoch().Adjacency).To(Equal(before.Adjacency))
		})

		It("stops drawing after unmount", func() {
			flush(q, 5)
			anim.Unmount()
			rec.Reset()
			frames := anim.Frames()

			flush(q, 100)
			Expect(rec.Ops).To(BeEmpty())
			Expect(anim.Frames()).To(Equal(frames))
			Expect(anim.Running()).To(BeFalse())
			Expect(q.Pending()).To(BeZero())
		})

		It("tolerates repeated unmount and mount", func() {
			anim.Unmount()
			anim.Unmount()
			anim.Mount()
			flush(q, 3)
			Expect(anim.Running()).To(BeTrue())
			Expect(q.Pending()).To(Equal(1))
		})

		DescribeTable("ignores invalid counts",
			func(n int) {
				ep := anim.Epoch()
				flush(q, 2)
				Expect(anim.SetEntityCount(n)).To(BeFalse())
				Expect(anim.Epoch()).To(BeIdenticalTo(ep))
				Expect(anim.Count()).To(Equal(50))
				Expect(anim.Running()).To(BeTrue())
				Expect(q.Pending()).To(Equal(1))
			},
			Entry("zero", 0),
			Entry("negative", -5),
			Entry("above the cap", 100001),
		)

		DescribeTable("ignores non-numeric text input",
			func(in string) {
				ep := anim.Epoch()
				Expect(anim.SetEntityCountText(in)).To(BeFalse())
				Expect(anim.Epoch()).To(BeIdenticalTo(ep))
				Expect(anim.Running()).To(BeTrue())
			},
			Entry("empty", ""),
			Entry("letters", "lots"),
			Entry("float", "12.5"),
		)

		It("accepts trimmed numeric text input", func() {
			Expect(anim.SetEntityCountText(" 75 ")).To(BeTrue())
			expectEpochValid(anim.Epoch(), 75)
		})

		It("replaces the loop and epoch on a valid count", func() {
			old := anim.Epoch()
			flush(q, 3)

			Expect(anim.SetEntityCount(500)).To(BeTrue())
			Expect(anim.Epoch()).NotTo(BeIdenticalTo(old))
			Expect(anim.Epoch().ID).NotTo(Equal(old.ID))
			expectEpochValid(anim.Epoch(), 500)
			Expect(q.Pending()).To(Equal(1))

			oldSnapshot := old.Clone()
			rec.Reset()
			flush(q, 1)
			Expect(rec.Count(render.OpDisc)).To(Equal(500))
			Expect(old.Entities).To(Equal(oldSnapshot.Entities))
		})

		It("produces independent epochs when re-seeded twice with the same count", func() {
			Expect(anim.SetEntityCount(120)).To(BeTrue())
			first := anim.Epoch()
			Expect(anim.SetEntityCount(120)).To(BeTrue())
			second := anim.Epoch()

			Expect(second).NotTo(BeIdenticalTo(first))
			Expect(second.ID).NotTo(Equal(first.ID))
			expectEpochValid(first, 120)
			expectEpochValid(second, 120)
			Expect(anim.Reseeds()).To(Equal(3))
		})
	})

	Context("when the surface is missing", func() {
		It("does nothing on mount", func() {
			anim = engine.New(graph.Chip, nil, q)
			Expect(func() { anim.Mount() }).NotTo(Panic())
			Expect(anim.Mounted()).To(BeFalse())
			Expect(anim.Epoch()).To(BeNil())
			Expect(q.Pending()).To(BeZero())
		})

		It("mounts once a surface is attached", func() {
			anim = engine.New(graph.Chip, nil, q, engine.WithSeed(3))
			anim.Mount()
			anim.Attach(rec)
			anim.Mount()
			Expect(anim.Mounted()).To(BeTrue())
			expectEpochValid(anim.Epoch(), engine.DefaultChipCount)
		})

		It("remembers a count set before mount", func() {
			anim = engine.New(graph.Network, nil, q, engine.WithSeed(3))
			Expect(anim.SetEntityCount(30)).To(BeTrue())
			anim.Attach(rec)
			anim.Mount()
			expectEpochValid(anim.Epoch(), 30)
		})
	})

	Context("with the chip variant", func() {
		It("labels every component and lets them drift", func() {
			anim = engine.New(graph.Chip, rec, q, engine.WithSeed(9))
			anim.Mount()
			flush(q, 1)
			Expect(rec.Count(render.OpText)).To(Equal(12))
			for _, e := range anim.Epoch().Entities {
				Expect(graph.Kinds).To(ContainElement(e.Kind))
			}
			anim.Unmount()
		})
	})

	Context("when the surface is destroyed mid-run", func() {
		It("terminates the loop and reports the fault", func() {
			var reported error
			anim = engine.New(graph.Network, rec, q,
				engine.WithSeed(5),
				engine.WithOnFault(func(err error) { reported = err }))
			anim.Mount()
			flush(q, 4)
			rec.Release()
			flush(q, 10)

			Expect(anim.Running()).To(BeFalse())
			Expect(anim.Frames()).To(BeEquivalentTo(4))
			Expect(errors.Is(anim.Err(), render.ErrSurfaceReleased)).To(BeTrue())
			Expect(reported).To(MatchError(render.ErrSurfaceReleased))

			var fe *engine.FrameError
			Expect(errors.As(anim.Err(), &fe)).To(BeTrue())
			Expect(fe.Epoch).To(Equal(anim.Epoch().ID))
			Expect(q.Pending()).To(BeZero())
		})
	})

	Context("with metrics attached", func() {
		It("observes every frame and resets on re-seed", func() {
			md := metrics.NewMeanDegree()
			ms := metrics.NewMeanStrength()
			anim = engine.New(graph.Network, rec, q,
				engine.WithRand(rand.New(rand.NewSource(8))),
				engine.WithMetrics(md, ms))
			anim.Mount()
			flush(q, 10)
			Expect(md.Value()).To(BeNumerically(">", 0))
			Expect(ms.Value()).To(BeNumerically(">=", 0.2))

			anim.SetEntityCount(10)
			Expect(ms.Value()).To(BeZero())
			anim.Unmount()
		})
	})

	Describe("Run", func() {
		It("refuses an unmounted animation", func() {
			anim = engine.New(graph.Network, rec, q)
			err := engine.Run(context.Background(), anim, q, 10, nil)
			Expect(err).To(MatchError(engine.ErrNotMounted))
		})

		It("flushes the requested number of frames", func() {
			anim = engine.New(graph.Network, rec, q, engine.WithSeed(2))
			anim.Mount()
			seen := 0
			err := engine.Run(context.Background(), anim, q, 25, func(int) error {
				seen++
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(Equal(25))
			Expect(anim.Frames()).To(BeEquivalentTo(25))
		})

		It("honors context cancellation", func() {
			anim = engine.New(graph.Network, rec, q, engine.WithSeed(2))
			anim.Mount()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := engine.Run(ctx, anim, q, 25, nil)
			Expect(err).To(MatchError(context.Canceled))
			Expect(anim.Frames()).To(BeZero())
		})

		It("surfaces a loop fault", func() {
			anim = engine.New(graph.Network, rec, q, engine.WithSeed(2))
			anim.Mount()
			rec.Release()
			err := engine.Run(context.Background(), anim, q, 25, nil)
			Expect(err).To(MatchError(render.ErrSurfaceReleased))
		})
	})
})
