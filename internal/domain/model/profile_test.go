package model_test

import (
	"testing"

	model "github.com/okian/jobrec/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewUserProfile(t *testing.T) {
	convey.Convey("Given profile construction input", t, func() {
		convey.Convey("When all fields are valid", func() {
			profile, err := model.NewUserProfile(
				[]string{"Python", " SQL ", "Docker"},
				"mid",
				[]string{"Backend Developer", "Data Engineer"},
				model.WithLocation("Austin, TX"),
				model.WithSalaryRange(90_000, 130_000),
				model.WithWorkType(model.WorkRemote),
			)

			convey.Convey("Then the profile is built with normalized terms", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profile.Skills, convey.ShouldResemble, []string{"python", "sql", "docker"})
				convey.So(profile.Experience, convey.ShouldEqual, model.LevelMid)
				convey.So(profile.PreferredRoles, convey.ShouldResemble, []string{"backend developer", "data engineer"})
				convey.So(profile.Location, convey.ShouldEqual, "Austin, TX")
				convey.So(profile.Salary.Min, convey.ShouldEqual, 90_000)
				convey.So(profile.Salary.Max, convey.ShouldEqual, 130_000)
				convey.So(profile.WorkType, convey.ShouldEqual, model.WorkRemote)
			})
		})

		convey.Convey("When only required fields are given", func() {
			profile, err := model.NewUserProfile([]string{"go"}, "senior", []string{"platform engineer"})

			convey.Convey("Then optional fields take their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profile.Location, convey.ShouldBeEmpty)
				convey.So(profile.Salary, convey.ShouldBeNil)
				convey.So(profile.WorkType, convey.ShouldEqual, model.WorkAny)
			})
		})

		convey.Convey("When the experience level is unknown", func() {
			_, err := model.NewUserProfile([]string{"go"}, "wizard", []string{"engineer"})

			convey.Convey("Then construction fails with the level sentinel", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, model.ErrInvalidExperienceLevel)
			})
		})

		convey.Convey("When the experience level needs normalization", func() {
			profile, err := model.NewUserProfile([]string{"go"}, "  SENIOR ", []string{"engineer"})

			convey.Convey("Then casing and whitespace are forgiven", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profile.Experience, convey.ShouldEqual, model.LevelSenior)
			})
		})

		convey.Convey("When the salary range is inverted", func() {
			_, err := model.NewUserProfile(
				[]string{"go"}, "mid", []string{"engineer"},
				model.WithSalaryRange(150_000, 100_000),
			)

			convey.Convey("Then construction fails with the salary sentinel", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, model.ErrInvalidSalaryRange)
			})
		})

		convey.Convey("When skill entries are blank", func() {
			profile, err := model.NewUserProfile([]string{"go", "  ", ""}, "entry", []string{"engineer", " "})

			convey.Convey("Then empties are dropped rather than kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profile.Skills, convey.ShouldResemble, []string{"go"})
				convey.So(profile.PreferredRoles, convey.ShouldResemble, []string{"engineer"})
			})
		})
	})
}

func TestParseExperienceLevel(t *testing.T) {
	convey.Convey("Given the seniority ladder", t, func() {
		convey.Convey("When parsing every recognized level", func() {
			for _, level := range model.Levels() {
				parsed, err := model.ParseExperienceLevel(string(level))
				convey.So(err, convey.ShouldBeNil)
				convey.So(parsed, convey.ShouldEqual, level)
			}
		})

		convey.Convey("When parsing an unknown string", func() {
			_, err := model.ParseExperienceLevel("principal")

			convey.Convey("Then it is rejected", func() {
				convey.So(err, convey.ShouldWrap, model.ErrInvalidExperienceLevel)
			})
		})

		convey.Convey("When asking for ladder positions", func() {
			convey.So(model.LevelEntry.Index(), convey.ShouldEqual, 0)
			convey.So(model.LevelMid.Index(), convey.ShouldEqual, 1)
			convey.So(model.LevelSenior.Index(), convey.ShouldEqual, 2)
			convey.So(model.LevelExecutive.Index(), convey.ShouldEqual, 3)
			convey.So(model.ExperienceLevel("unknown").Index(), convey.ShouldEqual, -1)
		})
	})
}
