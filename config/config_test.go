// Copyright (c) 2024 Neomantra Corp

package config_test

import (
	"testing"

	"github.com/Ar-Ray-code/h6xserial-idl/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config Suite")
}

var _ = Describe("Default", func() {
	It("matches the documented out-of-the-box paths", func() {
		c := config.Default()
		Expect(c.InputProbe).To(Equal([]string{
			"msgs/intermediate_msg.json",
			"../msgs/intermediate_msg.json",
		}))
		Expect(c.CodeDefaultOut).To(Equal("generated_c/seridl_generated_messages.h"))
		Expect(c.DocsDefaultOut).To(Equal("docs/COMMANDS.md"))
		Expect(c.Target).To(Equal("c"))
		Expect(c.Prefix).To(Equal("h6xserial_msg_"))
		Expect(c.CompressOutput).To(BeFalse())
	})
})
