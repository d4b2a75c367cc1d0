package integration_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"
)

var (
	pathToCrond   string
	pathToCrontab string
)

var _ = BeforeSuite(func() {
	var err error
	pathToCrond, err = gexec.Build("github.com/somnisoft/crond/cmd/crond")
	Expect(err).NotTo(HaveOccurred())

	pathToCrontab, err = gexec.Build("github.com/somnisoft/crond/cmd/crontab")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	gexec.CleanupBuildArtifacts()
})

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Integration Suite")
}
