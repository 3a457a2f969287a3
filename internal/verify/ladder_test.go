package verify

import (
	"context"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/potential"
)

func dirichletProblem(pot bvp.Potential, xmin, xmax float64, n int) bvp.Problem {
	return bvp.Problem{
		Potential: pot,
		Domain:    bvp.NewInterval(xmin, xmax, n, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
	}
}

var _ = ginkgo.Describe("Ladder", func() {
	var ctx context.Context

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
	})

	ginkgo.Context("box on the unit interval", func() {
		var prob bvp.Problem

		ginkgo.BeforeEach(func() {
			pot, err := potential.New(potential.FamilyBox, nil)
			Expect(err).NotTo(HaveOccurred())
			prob = dirichletProblem(pot, 0, 1, 400)
		})

		ginkgo.It("passes all three stages", func() {
			ladder := NewLadder(bvp.DefaultTolerances(), 3)
			rep, err := ladder.Run(ctx, prob)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Verdict).To(Equal(VerdictPass))
			for _, st := range rep.Stages {
				Expect(st.Reached).To(BeTrue(), "stage %s not reached", st.Stage)
				Expect(st.Passed).To(BeTrue(), "stage %s failed", st.Stage)
			}
			Expect(rep.Failures()).To(BeEmpty())
		})

		ginkgo.It("records observed, expected and tolerance on every check", func() {
			ladder := NewLadder(bvp.DefaultTolerances(), 3)
			rep, err := ladder.Run(ctx, prob)
			Expect(err).NotTo(HaveOccurred())
			for _, st := range rep.Stages {
				for _, c := range st.Checks {
					if c.Skipped || c.Name == "v1/nbound" {
						continue
					}
					Expect(c.Name).NotTo(BeEmpty())
					Expect(c.Tolerance).To(BeNumerically(">", 0), "check %s has no tolerance", c.Name)
				}
			}
		})

		ginkgo.It("fails terminally when the analytic tolerance is unreachable", func() {
			tol := bvp.DefaultTolerances()
			tol.AnalyticRel = 1e-12
			ladder := NewLadder(tol, 3)

			rep, err := ladder.Run(ctx, prob)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Verdict).To(Equal(VerdictFail))
			Expect(rep.Stages[0].Reached).To(BeTrue())
			Expect(rep.Stages[0].Passed).To(BeFalse())
			Expect(rep.Stages[1].Reached).To(BeFalse(), "V1 must not run after a V0 failure")
			Expect(rep.Stages[2].Reached).To(BeFalse(), "V2 must not run after a V0 failure")

			failures := rep.Failures()
			Expect(failures).NotTo(BeEmpty())
			for _, c := range failures {
				Expect(c.Name).To(HavePrefix("v0/eigenvalue"))
				Expect(c.Failure()).To(MatchError(bvp.ErrCheckFailed))
			}
		})
	})

	ginkgo.Context("Pöschl-Teller well with two bound states", func() {
		var prob bvp.Problem

		ginkgo.BeforeEach(func() {
			pot, err := potential.New(potential.FamilyPoschlTeller, map[string]float64{"v0": 6, "a": 1})
			Expect(err).NotTo(HaveOccurred())
			prob = dirichletProblem(pot, -6, 6, 1200)
		})

		ginkgo.It("passes the full ladder on a fine grid", func() {
			ladder := NewLadder(bvp.DefaultTolerances(), 2)
			rep, err := ladder.Run(ctx, prob)
			Expect(err).NotTo(HaveOccurred())
			Expect(rep.Verdict).To(Equal(VerdictPass))
		})

		ginkgo.It("confirms exact bound-state count agreement across methods", func() {
			ladder := NewLadder(bvp.DefaultTolerances(), 2)
			st := StageResult{Stage: StageV1}
			Expect(ladder.runV1(ctx, prob, &st)).To(Succeed())

			var nbound *Check
			for i := range st.Checks {
				if st.Checks[i].Name == "v1/nbound" {
					nbound = &st.Checks[i]
				}
			}
			Expect(nbound).NotTo(BeNil())
			Expect(nbound.Passed).To(BeTrue())
			Expect(nbound.Expected).To(Equal(2.0))
			Expect(nbound.Observed).To(Equal(2.0))
		})
	})

	ginkgo.Context("deeper well cross-method agreement", func() {
		ginkgo.It("keeps both retained eigenvalues within the cross-method tolerance", func() {
			pot, err := potential.New(potential.FamilyPoschlTeller, map[string]float64{"v0": 10, "a": 1})
			Expect(err).NotTo(HaveOccurred())
			prob := dirichletProblem(pot, -6, 6, 1600)

			ladder := NewLadder(bvp.DefaultTolerances(), 2)
			st := StageResult{Stage: StageV1}
			Expect(ladder.runV1(ctx, prob, &st)).To(Succeed())
			st.settle()
			Expect(st.Passed).To(BeTrue())
			for _, c := range st.Checks {
				if c.Name == "v1/nbound" {
					continue
				}
				Expect(relErr(c.Observed, c.Expected)).To(BeNumerically("<", 1e-4), c.Name)
			}
		})
	})

	ginkgo.Context("family without a closed form", func() {
		ginkgo.It("records a skipped analytic check instead of a silent pass", func() {
			pot, err := potential.New(potential.FamilyVolcano, nil)
			Expect(err).NotTo(HaveOccurred())
			prob := dirichletProblem(pot, -8, 8, 800)

			ladder := NewLadder(bvp.DefaultTolerances(), 1)
			st := StageResult{Stage: StageV0}
			Expect(ladder.runV0(ctx, prob, &st)).To(Succeed())
			st.settle()

			var analytic *Check
			for i := range st.Checks {
				if st.Checks[i].Name == "v0/analytic" {
					analytic = &st.Checks[i]
				}
			}
			Expect(analytic).NotTo(BeNil())
			Expect(analytic.Skipped).To(BeTrue())
			Expect(analytic.Note).To(ContainSubstring("volcano"))
			Expect(st.Passed).To(BeTrue(), "normalization checks still apply")
		})
	})

	ginkgo.Context("cancellation", func() {
		ginkgo.It("propagates a canceled context as a solver error", func() {
			pot, err := potential.New(potential.FamilyBox, nil)
			Expect(err).NotTo(HaveOccurred())
			prob := dirichletProblem(pot, 0, 1, 400)

			canceled, cancel := context.WithCancel(context.Background())
			cancel()

			ladder := NewLadder(bvp.DefaultTolerances(), 2)
			_, err = ladder.Run(canceled, prob)
			Expect(err).To(MatchError(bvp.ErrCanceled))
		})
	})
})
