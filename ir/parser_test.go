// Copyright (c) 2024 Neomantra Corp

package ir_test

import (
	"testing"

	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIr(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ir Suite")
}

var _ = Describe("Parse", func() {
	It("parses S1 (ping, scalar uint8)", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"version": "1.0.0",
			"max_address": 16,
			"ping": { "packet_id": 0, "msg_type": "uint8" }
		}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(schema.Metadata.Version).To(Equal("1.0.0"))
		Expect(schema.Metadata.MaxAddress).To(Equal(16))
		Expect(schema.Messages).To(HaveLen(1))

		ping := schema.Messages[0]
		Expect(ping.Name).To(Equal("ping"))
		Expect(ping.PacketID).To(Equal(0))
		Expect(ping.Body.Kind).To(Equal(ir.KindScalar))
		Expect(ping.Body.Type).To(Equal(ir.U8))
		Expect(ping.Body.Endian).To(Equal(ir.Little))
	})

	It("parses S2 (temperature, big-endian float32)", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"temperature": { "packet_id": 20, "msg_type": "float32", "endianess": "big" }
		}`))
		Expect(err).NotTo(HaveOccurred())
		body := schema.Messages[0].Body
		Expect(body.Type).To(Equal(ir.F32))
		Expect(body.Endian).To(Equal(ir.Big))
	})

	It("parses S3 (firmware_version, char array)", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"firmware_version": { "packet_id": 1, "msg_type": "char", "array": true, "max_length": 32 }
		}`))
		Expect(err).NotTo(HaveOccurred())
		body := schema.Messages[0].Body
		Expect(body.Kind).To(Equal(ir.KindArray))
		Expect(body.Element).To(Equal(ir.Char))
		Expect(body.MaxLength).To(Equal(32))
		Expect(body.LengthSource).To(Equal(ir.LengthExplicit))
	})

	It("honors an explicit length_source of frame", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"firmware_version": {
				"packet_id": 1, "msg_type": "char", "array": true,
				"max_length": 32, "length_source": "frame"
			}
		}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(schema.Messages[0].Body.LengthSource).To(Equal(ir.LengthFrame))
	})

	It("parses S4 (motor_speeds, int16 array)", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"motor_speeds": { "packet_id": 2, "msg_type": "int16", "array": true, "max_length": 16 }
		}`))
		Expect(err).NotTo(HaveOccurred())
		body := schema.Messages[0].Body
		Expect(body.Element).To(Equal(ir.I16))
		Expect(body.MaxLength).To(Equal(16))
	})

	It("parses S5 (sensor_data, nested struct) with correctly-scoped paths", func() {
		schema, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"sensor_data": {
				"packet_id": 3,
				"msg_type": "struct",
				"fields": {
					"temperature": { "msg_type": "float32", "endianess": "big" },
					"humidity": { "msg_type": "uint8" },
					"room_b": {
						"msg_type": "struct",
						"fields": {
							"temperatures": {
								"msg_type": "float32", "array": true, "max_length": 8, "endianess": "big"
							},
							"humidity": { "msg_type": "uint8" }
						}
					}
				}
			}
		}`))
		Expect(err).NotTo(HaveOccurred())
		body := schema.Messages[0].Body
		Expect(body.Kind).To(Equal(ir.KindStruct))
		Expect(body.Fields).To(HaveLen(3))

		var roomB *ir.Field
		for i := range body.Fields {
			if body.Fields[i].Name == "room_b" {
				roomB = &body.Fields[i]
			}
		}
		Expect(roomB).NotTo(BeNil())
		Expect(roomB.Body.Kind).To(Equal(ir.KindStruct))
		Expect(roomB.Body.Fields).To(HaveLen(2))
		Expect(roomB.Body.Fields[0].Name).To(Equal("temperatures"))
		Expect(roomB.Body.Fields[0].Body.MaxLength).To(Equal(8))
	})

	It("rejects S6 (duplicate packet_id) with a DuplicatePacketId diagnostic", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 20, "msg_type": "uint8" },
			"b": { "packet_id": 20, "msg_type": "uint8" }
		}`))
		Expect(err).To(HaveOccurred())
		var schemaErr *ir.SchemaError
		Expect(err).To(BeAssignableToTypeOf(schemaErr))
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaConflict))
	})

	It("rejects duplicate message names", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "uint8" },
			"a": { "packet_id": 2, "msg_type": "uint8" }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaConflict))
	})

	It("rejects an array without max_length", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "uint8", "array": true }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaShape))
	})

	It("rejects a struct without fields", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "struct" }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaShape))
	})

	It("rejects a struct flagged as an array", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "struct", "array": true, "max_length": 4,
				"fields": { "x": { "msg_type": "uint8" } } }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaShape))
	})

	It("rejects an unknown msg_type", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "uint128" }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaShape))
	})

	It("rejects an out-of-range packet_id", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 999, "msg_type": "uint8" }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaRange))
	})

	It("rejects an out-of-range max_address", func() {
		_, err := ir.ParseBytes([]byte(`{"max_address": 256, "a": {"packet_id": 1, "msg_type": "uint8"}}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaRange))
	})

	It("rejects an invalid message name", func() {
		_, err := ir.ParseBytes([]byte(`{"max_address": 16, "1bad": {"packet_id": 1, "msg_type": "uint8"}}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaType))
	})

	It("accepts distinct field names within a struct", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "struct",
				"fields": { "x": { "msg_type": "uint8" } } }
		}`))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a field name repeated within the same fields object", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "struct",
				"fields": {
					"x": { "msg_type": "uint8" },
					"x": { "msg_type": "uint16" }
				} }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaConflict))
	})

	It("rejects unknown keys (strict schema)", func() {
		_, err := ir.ParseBytes([]byte(`{
			"max_address": 16,
			"a": { "packet_id": 1, "msg_type": "uint8", "bogus_key": true }
		}`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindSchemaShape))
	})

	It("rejects malformed JSON", func() {
		_, err := ir.ParseBytes([]byte(`{not json`))
		Expect(err).To(HaveOccurred())
		Expect(err.(*ir.SchemaError).Kind).To(Equal(ir.KindJsonSyntax))
	})
})
