package shift_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/datamodel/datamodeltest"
	employeeDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-management/internal/shift"
	shiftPostgres "github.com/frahmantamala/attendance-management/internal/shift/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Shift Service", func() {
	var (
		ctx     = context.Background()
		service *shift.Service
	)

	BeforeEach(func() {
		db, err := datamodeltest.OpenSQLite()
		Expect(err).NotTo(HaveOccurred())
		for _, e := range []employeeDatamodel.Employee{
			{ID: 7, FirstName: "Mario", LastName: "Rossi", BadgeNumber: "M007", JobRole: "Dev", HireDate: "2023-01-10", Email: "m@example.com", Active: true},
			{ID: 8, FirstName: "Anna", LastName: "Verdi", BadgeNumber: "A008", JobRole: "PM", HireDate: "2023-01-10", Email: "a@example.com", Active: true},
		} {
			row := e
			Expect(db.Create(&row).Error).To(Succeed())
		}
		service = shift.NewService(shiftPostgres.NewShiftRepository(db), slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	create := func(employeeID int64, date, start, end string) int64 {
		id, err := service.CreateShift(ctx, shift.CreateShiftDTO{EmployeeID: employeeID, Date: date, StartTime: start, EndTime: end})
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	It("defaults the type and normalizes times", func() {
		id := create(7, "2024-03-01", "09:00", "17:30")

		list, err := service.ListShifts(ctx, shift.ListFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].ID).To(Equal(id))
		Expect(list[0].ShiftType).To(Equal(shift.DefaultType))
		Expect(list[0].StartTime).To(Equal("09:00:00"))
		Expect(list[0].EndTime).To(Equal("17:30:00"))
		Expect(list[0].BadgeNumber).To(Equal("M007"))
	})

	It("keeps an explicit type and note", func() {
		note := "cover"
		_, err := service.CreateShift(ctx, shift.CreateShiftDTO{
			EmployeeID: 7, Date: "2024-03-01", StartTime: "22:00:00", EndTime: "06:00:00", ShiftType: "Notturno", Note: &note,
		})
		Expect(err).NotTo(HaveOccurred())

		list, _ := service.ListShifts(ctx, shift.ListFilter{})
		Expect(list[0].ShiftType).To(Equal("Notturno"))
		Expect(*list[0].Note).To(Equal("cover"))
	})

	It("requires employee, date and times", func() {
		_, err := service.CreateShift(ctx, shift.CreateShiftDTO{Date: "2024-03-01", StartTime: "nine"})
		appErr, ok := internal.AsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.GetDetailedMessage()).To(Equal(
			"employeeId is required; startTime must be a time in HH:MM:SS format; endTime is required"))
	})

	Describe("ListShifts", func() {
		BeforeEach(func() {
			create(7, "2024-03-01", "14:00", "18:00")
			create(8, "2024-03-01", "08:00", "12:00")
			create(7, "2024-03-02", "09:00", "17:00")
		})

		It("orders by date desc then start time", func() {
			list, err := service.ListShifts(ctx, shift.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].Date).To(Equal("2024-03-02"))
			Expect(list[1].StartTime).To(Equal("08:00:00"))
			Expect(list[2].StartTime).To(Equal("14:00:00"))
		})

		It("filters by employee", func() {
			id := int64(8)
			list, err := service.ListShifts(ctx, shift.ListFilter{EmployeeID: &id})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].LastName).To(Equal("Verdi"))
		})

		It("prefers the date filter over the employee filter", func() {
			id := int64(8)
			list, err := service.ListShifts(ctx, shift.ListFilter{Date: "2024-03-01", EmployeeID: &id})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})

		It("rejects malformed dates", func() {
			_, err := service.ListShifts(ctx, shift.ListFilter{Date: "01/03/2024"})
			Expect(err).To(MatchError(ContainSubstring("date must be a date")))
		})
	})
})
