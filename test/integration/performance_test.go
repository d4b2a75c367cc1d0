package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"
)

func writeGeneratedSchedule(n int) string {
	path := filepath.Join(GinkgoT().TempDir(), "crontab")
	var body string
	for i := 0; i < n; i++ {
		body += "0 * * * * /usr/bin/job" + strconv.Itoa(i%10) + ".sh\n"
	}
	Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Performance", func() {
	Context("when processing large schedule files", func() {
		It("validates 100 jobs in under 1 second", func() {
			path := writeGeneratedSchedule(100)

			start := time.Now()
			command := exec.Command(pathToCrond, "validate", path)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(time.Since(start)).To(BeNumerically("<", 1*time.Second))
		})

		It("previews 100 jobs in under 1 second", func() {
			path := writeGeneratedSchedule(100)

			start := time.Now()
			command := exec.Command(pathToCrond, "preview", path, "--count", "1")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(time.Since(start)).To(BeNumerically("<", 1*time.Second))
		})

		It("validates 500 jobs in under 5 seconds", func() {
			path := writeGeneratedSchedule(500)

			start := time.Now()
			command := exec.Command(pathToCrond, "validate", path)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(time.Since(start)).To(BeNumerically("<", 5*time.Second))
		})
	})
})
