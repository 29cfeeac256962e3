package config_test

import (
	"runtime"
	"testing"

	"github.com/okian/jobrec/internal/config"
	"github.com/okian/jobrec/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.DefaultTopK, convey.ShouldEqual, 0)
			convey.So(cfg.MaxJobsLimit, convey.ShouldEqual, 500)
			convey.So(cfg.FuzzyThreshold, convey.ShouldEqual, 0.8)
			convey.So(cfg.SynonymScore, convey.ShouldEqual, 0.95)
			convey.So(cfg.NeutralScore, convey.ShouldEqual, 75)
			convey.So(cfg.CoverageBonus, convey.ShouldEqual, 10)
		})

		convey.Convey("Then the default weight table is valid", func() {
			convey.So(cfg.ScoreWeights, convey.ShouldResemble, types.DefaultWeights())
			convey.So(cfg.ScoreWeights.Validate(), convey.ShouldBeNil)
		})
	})
}
