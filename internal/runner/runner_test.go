package runner_test

import (
	"bytes"
	"errors"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/mweber/serialtest/internal/domain"
	"github.com/mweber/serialtest/internal/runner"
	"github.com/mweber/serialtest/internal/serial"
)

type checkCall struct {
	text     string
	desired  string
	settings serial.CheckSettings
	timeout  time.Duration
}

type checkResult struct {
	matched  bool
	response string
	err      error
}

// fakeChecker records calls and plays back scripted results. Without a
// script every call matches; the last scripted result repeats.
type fakeChecker struct {
	calls   []checkCall
	results []checkResult
}

func (f *fakeChecker) CheckWithTimeout(text, desired string, settings serial.CheckSettings, timeout time.Duration) (bool, string, error) {
	f.calls = append(f.calls, checkCall{text, desired, settings, timeout})

	if len(f.results) == 0 {
		return true, desired, nil
	}
	result := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return result.matched, result.response, result.err
}

func newTest(name, input, output string) domain.TestCase {
	return domain.TestCase{
		Name:     name,
		Input:    input,
		Output:   output,
		Settings: domain.DefaultTestCaseSettings(),
	}
}

var _ = Describe("DefaultRunner", func() {
	var (
		checker *fakeChecker
		out     *bytes.Buffer
		log     *logrus.Logger
	)

	BeforeEach(func() {
		checker = &fakeChecker{}
		out = &bytes.Buffer{}
		log = logrus.New()
		log.SetOutput(io.Discard)
	})

	run := func(suites ...domain.TestSuite) (runner.Summary, error) {
		return runner.NewRunner(checker, log, out).Run(suites)
	}

	It("should count passing tests", func() {
		summary, err := run(domain.TestSuite{
			Name:  "Smoke",
			Tests: []domain.TestCase{newTest("ping", "ping", "pong"), newTest("ver", "v", "1")},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(summary).To(Equal(runner.Summary{Total: 2, Passed: 2, Failed: 0}))
		Expect(out.String()).To(ContainSubstring("Smoke"))
		Expect(out.String()).To(ContainSubstring("✓ ping"))
		Expect(out.String()).To(ContainSubstring("2 tests, 2 passed, 0 failed"))
	})

	It("should count a mismatch as a failure with expected-versus-got detail", func() {
		checker.results = []checkResult{{matched: false, response: "nope"}}

		summary, err := run(domain.TestSuite{Tests: []domain.TestCase{newTest("ping", "ping", "pong")}})

		Expect(err).ToNot(HaveOccurred())
		Expect(summary.Failed).To(Equal(1))
		Expect(out.String()).To(ContainSubstring(`✗ ping: expected "pong", got "nope"`))
	})

	It("should treat a response timeout as a test failure and keep running", func() {
		checker.results = []checkResult{
			{err: serial.ErrTimeout},
			{matched: true, response: "pong"},
		}

		summary, err := run(domain.TestSuite{
			Tests: []domain.TestCase{newTest("first", "a", "b"), newTest("second", "ping", "pong")},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(summary).To(Equal(runner.Summary{Total: 2, Passed: 1, Failed: 1}))
		Expect(out.String()).To(ContainSubstring("✗ first: no response"))
		Expect(out.String()).To(ContainSubstring("✓ second"))
	})

	It("should abort the run on a connection failure", func() {
		deviceErr := errors.New("device gone")
		checker.results = []checkResult{{err: deviceErr}}

		summary, err := run(domain.TestSuite{
			Tests: []domain.TestCase{newTest("first", "a", "b"), newTest("second", "c", "d")},
		})

		Expect(errors.Is(err, deviceErr)).To(BeTrue())
		Expect(summary.Total).To(Equal(1))
		Expect(checker.calls).To(HaveLen(1))
		Expect(out.String()).ToNot(ContainSubstring("second"))
	})

	It("should label the implicit suite", func() {
		_, err := run(domain.TestSuite{Tests: []domain.TestCase{newTest("", "a", "b")}})

		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("(default)"))
	})

	It("should report unnamed tests by their input", func() {
		checker.results = []checkResult{{matched: false, response: "x"}}

		_, err := run(domain.TestSuite{Tests: []domain.TestCase{newTest("", "status", "ready")}})

		Expect(err).ToNot(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("✗ status"))
	})

	Describe("settings handling", func() {
		It("should pass input, expectation, formats and timeout through", func() {
			test := newTest("t", "cmd", "ok")
			test.Settings.Timeout = 250 * time.Millisecond

			_, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

			Expect(err).ToNot(HaveOccurred())
			Expect(checker.calls).To(HaveLen(1))
			Expect(checker.calls[0].text).To(Equal("cmd"))
			Expect(checker.calls[0].desired).To(Equal("ok"))
			Expect(checker.calls[0].timeout).To(Equal(250 * time.Millisecond))
			Expect(checker.calls[0].settings).To(Equal(serial.DefaultCheckSettings()))
		})

		It("should fold the expectation when ignore case is set", func() {
			test := newTest("t", "cmd", "PONG")
			test.Settings.IgnoreCase = true

			_, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

			Expect(err).ToNot(HaveOccurred())
			Expect(checker.calls[0].desired).To(Equal("pong"))
			Expect(checker.calls[0].settings.IgnoreCase).To(BeTrue())
		})
	})

	Describe("repeat", func() {
		It("should run the exchange once per repeat round", func() {
			test := newTest("t", "cmd", "ok")
			test.Settings.Repeat = 3

			summary, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

			Expect(err).ToNot(HaveOccurred())
			Expect(checker.calls).To(HaveLen(3))
			Expect(summary.Passed).To(Equal(1))
		})

		It("should stop repeating at the first failed round", func() {
			checker.results = []checkResult{{matched: false, response: "bad"}}
			test := newTest("t", "cmd", "ok")
			test.Settings.Repeat = 3

			summary, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

			Expect(err).ToNot(HaveOccurred())
			Expect(checker.calls).To(HaveLen(1))
			Expect(summary.Failed).To(Equal(1))
		})

		It("should pass vacuously when repeat is zero", func() {
			test := newTest("t", "cmd", "ok")
			test.Settings.Repeat = 0

			summary, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

			Expect(err).ToNot(HaveOccurred())
			Expect(checker.calls).To(BeEmpty())
			Expect(summary.Passed).To(Equal(1))
		})
	})

	It("should wait the configured delay before each send", func() {
		test := newTest("t", "cmd", "ok")
		test.Settings.Delay = 20 * time.Millisecond
		test.Settings.Repeat = 2

		start := time.Now()
		_, err := run(domain.TestSuite{Tests: []domain.TestCase{test}})

		Expect(err).ToNot(HaveOccurred())
		Expect(time.Since(start)).To(BeNumerically(">=", 40*time.Millisecond))
	})
})
