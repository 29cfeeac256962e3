package types_test

import (
	"testing"

	types "github.com/okian/jobrec/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWeights(t *testing.T) {
	Convey("Given the weight table", t, func() {
		Convey("When using the production defaults", func() {
			w := types.DefaultWeights()

			Convey("Then they carry the hand-tuned shares and validate", func() {
				So(w.Skill, ShouldEqual, 0.35)
				So(w.Role, ShouldEqual, 0.25)
				So(w.Experience, ShouldEqual, 0.15)
				So(w.Growth, ShouldEqual, 0.15)
				So(w.Location, ShouldEqual, 0.05)
				So(w.Salary, ShouldEqual, 0.05)
				So(w.Sum(), ShouldAlmostEqual, 1.0, 1e-12)
				So(w.Validate(), ShouldBeNil)
			})
		})

		Convey("When the weights do not sum to one", func() {
			w := types.Weights{Skill: 0.5, Role: 0.5, Experience: 0.5}

			Convey("Then validation fails with the weights sentinel", func() {
				So(w.Validate(), ShouldWrap, types.ErrInvalidWeights)
			})
		})

		Convey("When a weight is negative", func() {
			w := types.Weights{Skill: 1.35, Role: 0.25, Experience: 0.15, Growth: 0.15, Location: 0.05, Salary: -0.95}

			Convey("Then validation fails even if the sum is one", func() {
				So(w.Validate(), ShouldWrap, types.ErrInvalidWeights)
			})
		})

		Convey("When the sum is off only by float drift", func() {
			w := types.Weights{Skill: 0.1, Role: 0.2, Experience: 0.3, Growth: 0.2, Location: 0.1, Salary: 0.1}

			Convey("Then the tolerance absorbs it", func() {
				So(w.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestWeightsApply(t *testing.T) {
	Convey("Given a validated weight table", t, func() {
		w := types.DefaultWeights()

		Convey("When applying to a uniform breakdown", func() {
			b := types.ScoreBreakdown{Skill: 80, Role: 80, Experience: 80, Growth: 80, Location: 80, Salary: 80}

			Convey("Then the overall equals the common value", func() {
				So(w.Apply(b), ShouldAlmostEqual, 80, 1e-9)
			})
		})

		Convey("When applying to a mixed breakdown", func() {
			b := types.ScoreBreakdown{Skill: 90, Role: 70, Experience: 100, Growth: 60, Location: 30, Salary: 95}

			Convey("Then each sub-score contributes its share", func() {
				// 90*.35 + 70*.25 + 100*.15 + 60*.15 + 30*.05 + 95*.05 = 79.25
				So(w.Apply(b), ShouldAlmostEqual, 79.25, 1e-9)
			})
		})

		Convey("When sub-scores sit at the extremes", func() {
			floor := w.Apply(types.ScoreBreakdown{})
			ceiling := w.Apply(types.ScoreBreakdown{Skill: 100, Role: 100, Experience: 100, Growth: 100, Location: 100, Salary: 100})

			Convey("Then the overall stays on the 0..100 scale", func() {
				So(floor, ShouldEqual, 0)
				So(ceiling, ShouldAlmostEqual, 100, 1e-9)
			})
		})
	})
}

func TestSkillAnalysisShape(t *testing.T) {
	Convey("Given a skill analysis value", t, func() {
		Convey("When built from match records", func() {
			analysis := types.SkillAnalysis{
				Matches: []types.SkillMatch{
					{UserSkill: "python", JobSkill: "python", Score: 1.0, Type: types.MatchExact},
					{UserSkill: "postgres", JobSkill: "postgresql", Score: 0.95, Type: types.MatchSynonym},
					{UserSkill: "javascrpt", JobSkill: "javascript", Score: 0.84, Type: types.MatchFuzzy},
				},
				Missing:      []string{"aws"},
				Additional:   []string{"rust"},
				OverallScore: 0.6975,
				Coverage:     75,
			}

			Convey("Then match types cover the three rules", func() {
				So(analysis.Matches[0].Type, ShouldEqual, types.MatchExact)
				So(analysis.Matches[1].Type, ShouldEqual, types.MatchSynonym)
				So(analysis.Matches[2].Type, ShouldEqual, types.MatchFuzzy)
			})

			Convey("And the aggregate fields stay in range", func() {
				So(analysis.OverallScore, ShouldBeBetweenOrEqual, 0, 1)
				So(analysis.Coverage, ShouldBeBetweenOrEqual, 0, 100)
			})
		})
	})
}
