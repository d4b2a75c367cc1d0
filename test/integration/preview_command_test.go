package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("crond preview", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "crontab")
	})

	It("lists upcoming run times for every job in the file", func() {
		Expect(os.WriteFile(path, []byte(
			"*/5 * * * * /bin/five\n"+
				"@daily /bin/d\n",
		), 0o644)).To(Succeed())

		command := exec.Command(pathToCrond, "preview", path)
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("/bin/five"))
		Expect(session.Out).To(gbytes.Say("/bin/d"))
		Expect(session.Out).To(gbytes.Say(`(?m)^\s+1\.`))
	})

	It("honors the --count flag", func() {
		Expect(os.WriteFile(path, []byte("* * * * * /bin/true\n"), 0o644)).To(Succeed())

		command := exec.Command(pathToCrond, "preview", path, "--count", "3")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say(`(?m)^\s+3\.`))
	})

	It("rejects an out-of-range --count", func() {
		Expect(os.WriteFile(path, []byte("* * * * * /bin/true\n"), 0o644)).To(Succeed())

		command := exec.Command(pathToCrond, "preview", path, "--count", "0")
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(1))
	})

	It("fails when the schedule file does not exist", func() {
		command := exec.Command(pathToCrond, "preview", filepath.Join(GinkgoT().TempDir(), "missing"))
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(1))
	})

	It("falls back to the default schedule path when no file is given", func() {
		home := GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(home, ".config"), 0o700)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(home, ".config", ".crontab"), []byte("@hourly /bin/h\n"), 0o644)).To(Succeed())

		command := exec.Command(pathToCrond, "preview")
		command.Env = append(os.Environ(), "HOME="+home)
		session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())

		Eventually(session).Should(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("/bin/h"))
	})
})
