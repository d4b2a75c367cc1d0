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

var _ = Describe("CLI Integration Tests", func() {
	Describe("crond version command", func() {
		It("displays version information", func() {
			command := exec.Command(pathToCrond, "version")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("crond"))
		})

		It("displays version information with --version", func() {
			command := exec.Command(pathToCrond, "--version")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("crond"))
		})
	})

	Describe("crond --help", func() {
		It("lists the available subcommands", func() {
			command := exec.Command(pathToCrond, "--help")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Available Commands"))
			Expect(session.Out).To(gbytes.Say("preview"))
			Expect(session.Out).To(gbytes.Say("validate"))
		})
	})

	Describe("crond with an unknown command", func() {
		It("returns an error", func() {
			command := exec.Command(pathToCrond, "nonexistent")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("unknown command"))
		})
	})

	Describe("crond validate", func() {
		It("accepts a well-formed schedule file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "crontab")
			Expect(os.WriteFile(path, []byte("* * * * * /bin/true\n"), 0o644)).To(Succeed())

			command := exec.Command(pathToCrond, "validate", path)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("accepted"))
		})

		It("reports a rejected line and exits non-zero", func() {
			path := filepath.Join(GinkgoT().TempDir(), "crontab")
			Expect(os.WriteFile(path, []byte("60 * * * * /bin/bad\n"), 0o644)).To(Succeed())

			command := exec.Command(pathToCrond, "validate", path)
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Out).To(gbytes.Say("rejected"))
		})
	})

	Describe("crontab -l on a missing schedule", func() {
		It("reports no crontab and exits non-zero", func() {
			command := exec.Command(pathToCrontab, "-l")
			command.Env = append(os.Environ(), "HOME="+GinkgoT().TempDir())
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("no crontab"))
		})
	})

	Describe("crontab installing from a file", func() {
		It("copies the file into place and crontab -l prints it back", func() {
			home := GinkgoT().TempDir()
			src := filepath.Join(GinkgoT().TempDir(), "source")
			Expect(os.WriteFile(src, []byte("@daily /bin/d\n"), 0o644)).To(Succeed())

			install := exec.Command(pathToCrontab, src)
			install.Env = append(os.Environ(), "HOME="+home)
			session, err := gexec.Start(install, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())
			Eventually(session).Should(gexec.Exit(0))

			list := exec.Command(pathToCrontab, "-l")
			list.Env = append(os.Environ(), "HOME="+home)
			listSession, err := gexec.Start(list, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())
			Eventually(listSession).Should(gexec.Exit(0))
			Expect(listSession.Out).To(gbytes.Say("@daily /bin/d"))
		})
	})
})
