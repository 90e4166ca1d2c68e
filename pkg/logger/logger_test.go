package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	It("writes JSON records at or above the configured level", func() {
		var buf bytes.Buffer
		lg := logger.New(&buf, "warn", "json")

		lg.Info("ignored")
		lg.Warn("kept", "employee_id", 7)

		var rec map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &rec)).To(Succeed())
		Expect(rec["msg"]).To(Equal("kept"))
		Expect(rec["employee_id"]).To(BeNumerically("==", 7))
	})

	It("parses levels case-insensitively and defaults to info", func() {
		Expect(logger.ParseLevel("DEBUG")).To(Equal(slog.LevelDebug))
		Expect(logger.ParseLevel("error")).To(Equal(slog.LevelError))
		Expect(logger.ParseLevel("verbose")).To(Equal(slog.LevelInfo))
	})

	It("also writes to the rotated log file when a path is set", func() {
		path := filepath.Join(GinkgoT().TempDir(), "app.log")
		lg := logger.Init(internal.LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   internal.LogFileConfig{Path: path},
		})

		lg.Info("clock-in recorded")

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("clock-in recorded"))
	})

	It("carries fields through the context", func() {
		var buf bytes.Buffer
		base := logger.New(&buf, "info", "json")
		ctx := logger.WithLogger(context.Background(), base)
		ctx = logger.With(ctx, "traceID", "abc")

		logger.From(ctx).Info("hello")
		Expect(buf.String()).To(ContainSubstring(`"traceID":"abc"`))
	})
})
