package pacer_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
)

func treeConfig(seed int64) sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	cfg.Params = growth.Params{Life: 120, Multiplier: 8, Leaves: growth.DefaultLeaves}
	return cfg
}

var _ = Describe("Calibrate", func() {
	It("is reproducible for a fixed seed", func() {
		first, err := pacer.Calibrate(context.Background(), treeConfig(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(BeNumerically(">", 0))

		second, err := pacer.Calibrate(context.Background(), treeConfig(1))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("matches a plain run of the simulator", func() {
		s, err := sim.New(treeConfig(4))
		Expect(err).NotTo(HaveOccurred())
		result, err := s.Run(context.Background(), nil, nil)
		Expect(err).NotTo(HaveOccurred())

		ticks, err := pacer.Calibrate(context.Background(), treeConfig(4))
		Expect(err).NotTo(HaveOccurred())
		Expect(ticks).To(Equal(result.Ticks))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := pacer.Calibrate(ctx, treeConfig(1))
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Rate", func() {
	DescribeTable("seconds per tick",
		func(lifetime float64, ticks uint64, want float64) {
			spt, err := pacer.Rate(lifetime, ticks)
			Expect(err).NotTo(HaveOccurred())
			Expect(spt).To(BeNumerically("~", want, 1e-9))
		},
		Entry("even split", 100.0, uint64(50), 2.0),
		Entry("fractional", 10.0, uint64(4), 2.5),
		Entry("zero ticks counts as one", 30.0, uint64(0), 30.0),
	)

	It("rejects non-positive lifetimes", func() {
		_, err := pacer.Rate(0, 10)
		Expect(err).To(MatchError(pacer.ErrInvalidLifetime))
		_, err = pacer.Rate(-5, 10)
		Expect(err).To(MatchError(pacer.ErrInvalidLifetime))
	})
})

var _ = Describe("TargetTick", func() {
	now := time.Unix(1_700_000_000, 0)

	It("floors elapsed time over the rate", func() {
		Expect(pacer.TargetTick(now.Add(-10*time.Second), 2.0, now)).To(Equal(uint64(5)))
		Expect(pacer.TargetTick(now.Add(-11*time.Second), 2.0, now)).To(Equal(uint64(5)))
	})

	It("is zero without a rate or for a future creation time", func() {
		Expect(pacer.TargetTick(now.Add(-10*time.Second), 0, now)).To(BeZero())
		Expect(pacer.TargetTick(now.Add(time.Hour), 2.0, now)).To(BeZero())
	})
})

var _ = Describe("Named trees", func() {
	It("reaches the final tick when the whole lifetime has elapsed", func() {
		created := time.Unix(1_700_000_000, 0)
		rec, err := pacer.NewNamed(context.Background(), treeConfig(1), 3600, created)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Named()).To(BeTrue())
		Expect(rec.Ticks).To(BeZero())

		total, err := pacer.Calibrate(context.Background(), treeConfig(1))
		Expect(err).NotTo(HaveOccurred())

		later := created.Add(3600 * time.Second)
		target := pacer.TargetTick(rec.Created, rec.SecondsPerTick, later)
		Expect(target).To(BeNumerically(">=", total-1))
		Expect(target).To(BeNumerically("<=", total))
	})

	It("refuses a zero lifetime", func() {
		_, err := pacer.NewNamed(context.Background(), treeConfig(1), 0, time.Now())
		Expect(err).To(MatchError(pacer.ErrInvalidLifetime))
	})
})

var _ = Describe("Resume", func() {
	now := time.Unix(1_700_000_000, 0)

	It("runs a named tree silently up to the elapsed tick", func() {
		rec := storage.Record{Seed: 1, Created: now.Add(-10 * time.Second), SecondsPerTick: 2.0}
		p := pacer.Resume(rec, now)

		Expect(p.Live).To(BeTrue())
		Expect(p.Step).To(Equal(2 * time.Second))
		Expect(p.Target).To(Equal(uint64(5)))
		for tick := uint64(0); tick < 5; tick++ {
			Expect(p.Visible(tick)).To(BeFalse(), "tick %d", tick)
		}
		Expect(p.Visible(5)).To(BeTrue())
	})

	It("replays a simple record to its saved tick", func() {
		p := pacer.Resume(storage.Record{Seed: 9, Ticks: 40}, now)
		Expect(p.Live).To(BeFalse())
		Expect(p.Target).To(Equal(uint64(40)))
		Expect(p.Visible(100)).To(BeFalse())
	})
})

var _ = Describe("Pause and Wait", func() {
	It("does not wait for silent ticks", func() {
		p := pacer.Pacer{Live: true, Step: time.Hour, Target: 10}
		start := time.Now()
		Expect(p.Pause(context.Background(), 3)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
	})

	It("waits the step for visible ticks", func() {
		p := pacer.Pacer{Live: true, Step: 30 * time.Millisecond}
		start := time.Now()
		Expect(p.Pause(context.Background(), 0)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically(">=", 30*time.Millisecond))
	})

	It("returns promptly on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		start := time.Now()
		err := pacer.Wait(ctx, time.Hour)
		Expect(err).To(MatchError(context.Canceled))
		Expect(time.Since(start)).To(BeNumerically("<", pacer.WaitSlice+time.Second))
	})

	It("fails immediately on a done context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(pacer.Wait(ctx, 0)).To(MatchError(context.Canceled))
	})

	It("returns immediately for a zero duration", func() {
		Expect(pacer.Wait(context.Background(), 0)).To(Succeed())
	})
})
