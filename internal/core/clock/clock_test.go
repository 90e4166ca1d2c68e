package clock_test

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/core/clock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clock", func() {
	It("formats today and the time of day in its zone", func() {
		loc := time.FixedZone("CET", 3600)
		c := clock.New(loc, func() time.Time {
			return time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
		})

		Expect(c.Today()).To(Equal("2024-03-02"))
		Expect(c.TimeOfDay()).To(Equal("00:30:00"))
	})

	DescribeTable("HoursBetween",
		func(in, out string, expected float64) {
			h, err := clock.HoursBetween(in, out)
			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(BeNumerically("~", expected, 0.001))
		},
		Entry("regular day", "09:00:00", "17:30:00", 8.5),
		Entry("short format", "08:15", "12:45", 4.5),
		Entry("night shift crossing midnight", "22:00:00", "06:00:00", 8.0),
		Entry("same instant", "10:00:00", "10:00:00", 0.0),
	)

	It("rejects malformed times", func() {
		_, err := clock.HoursBetween("9am", "17:00:00")
		Expect(err).To(MatchError(ContainSubstring("invalid time")))
	})

	It("normalizes HH:MM", func() {
		Expect(clock.NormalizeTimeOfDay("07:05")).To(Equal("07:05:00"))
	})

	It("rejects malformed dates", func() {
		_, err := clock.ParseDate("2024-13-01")
		Expect(err).To(HaveOccurred())
	})
})
