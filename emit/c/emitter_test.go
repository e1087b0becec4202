// Copyright (c) 2024 Neomantra Corp

package c_test

import (
	"testing"

	"github.com/Ar-Ray-code/h6xserial-idl/config"
	emitc "github.com/Ar-Ray-code/h6xserial-idl/emit/c"
	"github.com/Ar-Ray-code/h6xserial-idl/ir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEmitC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "emit/c Suite")
}

var _ = Describe("c emitter", func() {
	cfg := config.Config{Prefix: "h6xserial_msg_", CodeDefaultOut: "generated_c/seridl_generated_messages.h"}

	It("reports its target name", func() {
		Expect(emitc.New().Name()).To(Equal("c"))
	})

	It("renders S1 (ping, scalar uint8) with a PACKET_ID macro and value member", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "ping", PacketID: 0, Body: ir.Body{Kind: ir.KindScalar, Type: ir.U8}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).To(ContainSubstring("#ifndef SERIDL_GENERATED_MESSAGES_H"))
		Expect(src).To(ContainSubstring("typedef struct {\n    uint8_t value;\n} h6xserial_msg_ping_t;"))
		Expect(src).To(ContainSubstring("#define H6XSERIAL_MSG_PING_PACKET_ID 0"))
		Expect(src).To(ContainSubstring("h6xserial_msg_ping_encode(const h6xserial_msg_ping_t *msg"))
		Expect(src).To(ContainSubstring("h6xserial_msg_ping_decode(h6xserial_msg_ping_t *msg"))
		Expect(src).To(ContainSubstring("h6xserial_msg_write_u8(out_buf + off, msg->value); off += 1;"))
	})

	It("renders S2 (temperature, big-endian float32) using the be helper", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "temperature", PacketID: 20, Body: ir.Body{Kind: ir.KindScalar, Type: ir.F32, Endian: ir.Big}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).To(ContainSubstring("h6xserial_msg_write_f32_be(out_buf + off, msg->value); off += 4;"))
		Expect(src).To(ContainSubstring("#define H6XSERIAL_MSG_TEMPERATURE_MAX_ENCODED_SIZE 4"))
	})

	It("renders S3 (firmware_version, char array) with an explicit length prefix by default", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "firmware_version", PacketID: 1, Body: ir.Body{
				Kind: ir.KindArray, Element: ir.Char, MaxLength: 32, LengthSource: ir.LengthExplicit,
			}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).To(ContainSubstring("char data[32];"))
		Expect(src).To(ContainSubstring("uint32_t length;"))
		Expect(src).To(ContainSubstring("#define H6XSERIAL_MSG_FIRMWARE_VERSION_MAX_LENGTH 32"))
		Expect(src).To(ContainSubstring("h6xserial_msg_write_u8(out_buf + off, (uint8_t)msg->length); off += 1;"))
	})

	It("renders a frame-sourced array with no length prefix on the wire", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "firmware_version", PacketID: 1, Body: ir.Body{
				Kind: ir.KindArray, Element: ir.Char, MaxLength: 32, LengthSource: ir.LengthFrame,
			}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).NotTo(ContainSubstring("h6xserial_msg_write_u8(out_buf + off, (uint8_t)msg->length)"))
		Expect(src).To(ContainSubstring("msg->length = (uint32_t)(remaining / 1);"))
	})

	It("renders S4 (motor_speeds, int16 array) with the narrowest fitting prefix width", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "motor_speeds", PacketID: 2, Body: ir.Body{
				Kind: ir.KindArray, Element: ir.I16, MaxLength: 16, LengthSource: ir.LengthExplicit,
			}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).To(ContainSubstring("int16_t data[16];"))
		Expect(src).To(ContainSubstring("h6xserial_msg_write_u8(out_buf + off, (uint8_t)msg->length); off += 1;"))
		Expect(src).To(ContainSubstring("h6xserial_msg_write_i16_le(out_buf + off, msg->data[i]); off += 2;"))
	})

	It("renders S5 (sensor_data, nested struct) with an inlined nested record and a nested-array MAX_LENGTH macro", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "sensor_data", PacketID: 3, Body: ir.Body{
				Kind: ir.KindStruct,
				Fields: []ir.Field{
					{Name: "temperature", Body: ir.Body{Kind: ir.KindScalar, Type: ir.F32, Endian: ir.Big}},
					{Name: "humidity", Body: ir.Body{Kind: ir.KindScalar, Type: ir.U8}},
					{Name: "room_b", Body: ir.Body{
						Kind: ir.KindStruct,
						Fields: []ir.Field{
							{Name: "temperatures", Body: ir.Body{
								Kind: ir.KindArray, Element: ir.F32, MaxLength: 8, Endian: ir.Big,
							}},
							{Name: "humidity", Body: ir.Body{Kind: ir.KindScalar, Type: ir.U8}},
						},
					}},
				},
			}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		src := string(out)

		Expect(src).To(ContainSubstring("float temperature;"))
		Expect(src).To(ContainSubstring("uint8_t humidity;"))
		Expect(src).To(ContainSubstring("float data[8];"))
		Expect(src).To(ContainSubstring("uint32_t length;"))
		Expect(src).To(ContainSubstring("} temperatures;"))
		Expect(src).To(ContainSubstring("h6xserial_msg_write_f32_be(out_buf + off, msg->room_b.temperatures.data[i]); off += 4;"))
		Expect(src).To(ContainSubstring("#define H6XSERIAL_MSG_SENSOR_DATA_ROOM_B_TEMPERATURES_MAX_LENGTH 8"))
	})

	It("rejects an array longer than max_length at encode time via encoded_size", func() {
		schema := &ir.Schema{Messages: []ir.MessageDefinition{
			{Name: "motor_speeds", PacketID: 2, Body: ir.Body{
				Kind: ir.KindArray, Element: ir.I16, MaxLength: 16,
			}},
		}}
		out, err := emitc.New().Emit(schema, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("if (msg->length > 16) return (size_t)-1;"))
	})
})
