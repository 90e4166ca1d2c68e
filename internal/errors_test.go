package internal_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("keeps sentinels intact when a cause is attached", func() {
		sentinel := internal.NewDuplicateError("already there", internal.ErrCodeDuplicateEntry)
		wrapped := sentinel.WithCause(errors.New("unique violation"))

		Expect(sentinel.Cause).To(BeNil())
		Expect(errors.Is(wrapped, sentinel)).To(BeTrue())
		Expect(wrapped.Error()).To(Equal("already there: unique violation"))
	})

	It("is found through fmt wrapping", func() {
		err := fmt.Errorf("service: %w", internal.ErrInvalidCredentials)

		appErr, ok := internal.AsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("does not match a different code of the same type", func() {
		a := internal.NewNotFoundError("a", internal.ErrCodeUserNotFound)
		b := internal.NewNotFoundError("b", internal.ErrCodeEmployeeNotFound)
		Expect(errors.Is(a, b)).To(BeFalse())
	})

	It("joins validation messages", func() {
		err := internal.NewValidationFieldError("username", "username is required", internal.ErrCodeValidationFailed)
		err.Details = internal.ValidationErrors{Errors: append(
			err.Details.(internal.ValidationErrors).Errors,
			internal.ValidationError{Field: "password", Message: "password is required"},
		)}

		Expect(err.Error()).To(Equal("username is required"))
		Expect(err.GetDetailedMessage()).To(Equal("username is required; password is required"))
	})
})
