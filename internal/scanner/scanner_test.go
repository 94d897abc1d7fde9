package scanner_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mweber/serialtest/internal/scanner"
)

var _ = Describe("Scanner", func() {
	var s *scanner.FileScanner

	BeforeEach(func() {
		s = scanner.NewScanner(".sut")
	})

	It("should find test files in a directory", func() {
		files, err := s.Scan([]string{filepath.Join("..", "..", "testdata", "suites")})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
		// Sorted alphabetically
		Expect(filepath.Base(files[0])).To(Equal("basic.sut"))
		Expect(filepath.Base(files[1])).To(Equal("broken.sut"))
	})

	It("should walk directories recursively and skip other extensions", func() {
		files, err := s.Scan([]string{filepath.Join("..", "..", "testdata")})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
		for _, file := range files {
			Expect(filepath.Ext(file)).To(Equal(".sut"))
		}
	})

	It("should take explicit files as given regardless of extension", func() {
		path := filepath.Join("..", "..", "testdata", "configs", "minimal.yaml")
		files, err := s.Scan([]string{path})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{path}))
	})

	It("should preserve the argument order", func() {
		second := filepath.Join("..", "..", "testdata", "suites", "broken.sut")
		first := filepath.Join("..", "..", "testdata", "suites", "basic.sut")
		files, err := s.Scan([]string{second, first})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{second, first}))
	})

	It("should return an error for a nonexistent path", func() {
		_, err := s.Scan([]string{"nonexistent_dir"})
		Expect(err).To(MatchError(ContainSubstring("failed to scan nonexistent_dir")))
	})
})
