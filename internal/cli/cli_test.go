package cli

import (
	"bytes"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mweber/serialtest/internal/format"
)

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

var _ = Describe("textFlags", func() {
	It("should default to text in both directions", func() {
		f := textFlags{}
		Expect(f.input()).To(Equal(format.Text))
		Expect(f.output()).To(Equal(format.Text))
	})

	It("should apply a bidirectional flag to both directions", func() {
		f := textFlags{hex: true}
		Expect(f.input()).To(Equal(format.Hex))
		Expect(f.output()).To(Equal(format.Hex))

		f = textFlags{binary: true}
		Expect(f.input()).To(Equal(format.Binary))
		Expect(f.output()).To(Equal(format.Binary))
	})

	It("should apply an input flag to the input direction only", func() {
		f := textFlags{hexIn: true}
		Expect(f.input()).To(Equal(format.Hex))
		Expect(f.output()).To(Equal(format.Text))
	})

	It("should let direction specific flags beat bidirectional ones", func() {
		f := textFlags{hex: true, binaryOut: true}
		Expect(f.input()).To(Equal(format.Hex))
		Expect(f.output()).To(Equal(format.Binary))

		f = textFlags{hex: true, binaryIn: true}
		Expect(f.input()).To(Equal(format.Binary))
		Expect(f.output()).To(Equal(format.Hex))
	})
})

var _ = Describe("validate command", func() {
	It("should report suite and test counts", func() {
		path := filepath.Join("..", "..", "testdata", "suites", "basic.sut")

		out, err := execute("validate", path)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(path + ": 2 suites, 4 tests"))
	})

	It("should surface parse diagnostics", func() {
		path := filepath.Join("..", "..", "testdata", "suites", "broken.sut")

		_, err := execute("validate", path)

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring(`missing closing parenthesis ")"`))
	})

	It("should discover test files in directories", func() {
		dir := filepath.Join("..", "..", "testdata", "suites")

		out, err := execute("validate", dir)

		Expect(out).To(ContainSubstring("basic.sut: 2 suites, 4 tests"))
		Expect(err).To(MatchError(ContainSubstring("broken.sut")))
	})

	It("should fail when no test files are found", func() {
		dir := filepath.Join("..", "..", "testdata", "configs")

		_, err := execute("validate", dir)

		Expect(err).To(MatchError("no test files found"))
	})
})

var _ = Describe("run command", func() {
	It("should fail when no port is selected", func() {
		_, err := execute("run", "whatever.sut")

		Expect(err).To(MatchError(ContainSubstring("no port selected")))
	})
})

var _ = Describe("root command", func() {
	It("should report the version", func() {
		out, err := execute("--version")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(version))
	})
})
