package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anirudhraja/protoview"
	"github.com/anirudhraja/protoview/addressbook"
	"github.com/anirudhraja/protoview/internal/logging"
	"github.com/anirudhraja/protoview/wire"
)

// maxwell encodes Person{name: "maxwell", id: 42} with two phone numbers
var maxwell = []byte{
	0x0a, 0x07, 0x6d, 0x61, 0x78, 0x77, 0x65, 0x6c, 0x6c, 0x10, 0x2a, 0x1a, 0x16, 0x0a,
	0x0e, 0x2b, 0x31, 0x32, 0x30, 0x32, 0x2d, 0x35, 0x35, 0x35, 0x2d, 0x31, 0x32, 0x31,
	0x32, 0x12, 0x04, 0x68, 0x6f, 0x6d, 0x65, 0x1a, 0x18, 0x0a, 0x0e, 0x2b, 0x31, 0x38,
	0x30, 0x30, 0x2d, 0x38, 0x36, 0x37, 0x2d, 0x35, 0x33, 0x30, 0x38, 0x12, 0x06, 0x6d,
	0x6f, 0x62, 0x69, 0x6c, 0x65,
}

func main() {
	cfg := logging.DefaultConfig()
	logging.ApplyEnv(&cfg)
	logger := logging.New("sampleapp", os.Stderr, cfg)

	proto := protoview.New(nil, protoview.WithLogger(logger))

	fmt.Println("🚀 Protoview Sample App")
	fmt.Println(strings.Repeat("=", 70))

	// Decode into a record type
	var person addressbook.Person
	if err := proto.Unmarshal(maxwell, &person); err != nil {
		log.Fatalf("Failed to decode person: %v", err)
	}
	fmt.Printf("👤 Name: %s, ID: %d\n", person.Name, person.ID)
	for i, phone := range person.Phones {
		fmt.Printf("   📞 Phone %d: %s (%s)\n", i+1, phone.Number, phone.Type)
	}

	// Same bytes without any record type
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📋 Schema-less Dump:")
	fmt.Println(strings.Repeat("=", 70))
	if err := proto.Dump(os.Stdout, maxwell, ""); err != nil {
		log.Fatalf("Failed to dump payload: %v", err)
	}

	demonstrateErrors(proto)
}

// demonstrateErrors shows how malformed input is reported
func demonstrateErrors(proto *protoview.Protoview) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("⚠️  Malformed Input:")
	fmt.Println(strings.Repeat("=", 70))

	cases := []struct {
		name string
		data []byte
	}{
		{"length past end of buffer", maxwell[:20]},
		{"trailing garbage", append(append([]byte{}, maxwell...), 0xff)},
		{"invalid wire type", []byte{0x0f}},
		{"bad string in phone", []byte{0x1a, 0x04, 0x0a, 0x02, 0xff, 0xfe}},
	}

	for _, c := range cases {
		var person addressbook.Person
		err := proto.Unmarshal(c.data, &person)

		var fe *wire.FieldError
		switch {
		case err == nil:
			fmt.Printf("   %s: decoded %+v\n", c.name, person)
		case errors.As(err, &fe):
			fmt.Printf("   %s: field path %v: %v\n", c.name, fe.FieldPath, fe.Err)
		default:
			fmt.Printf("   %s: %v\n", c.name, err)
		}
	}
}
