// Copyright (c) 2024 Neomantra Corp

package ir_test

import (
	"os"
	"path/filepath"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Load", func() {
	It("parses a well-formed document root", func() {
		v, err := ir.Load([]byte(`{"max_address": 16}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(v).NotTo(BeNil())
	})

	It("rejects a non-object root", func() {
		_, err := ir.Load([]byte(`[1, 2, 3]`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("LoadFile and ProbeLoad", func() {
	It("reports an Io error for a missing file", func() {
		_, err := ir.LoadFile("/nonexistent/path/intermediate_msg.json")
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindIo))
	})

	It("reads the first existing candidate", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "intermediate_msg.json")
		Expect(os.WriteFile(path, []byte(`{"max_address": 16}`), 0644)).To(Succeed())

		v, used, err := ir.ProbeLoad([]string{
			filepath.Join(dir, "missing.json"),
			path,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(used).To(Equal(path))
		Expect(v).NotTo(BeNil())
	})

	It("errors when no candidate exists", func() {
		_, _, err := ir.ProbeLoad([]string{"/no/such/a.json", "/no/such/b.json"})
		Expect(err).To(HaveOccurred())
	})
})
