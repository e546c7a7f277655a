// Package addressbook holds record shapes decoded from the wire format
// through wire.Sink: a Person with repeated PhoneNumber entries, and an
// AddressBook of people.
package addressbook

import (
	"fmt"

	"github.com/anirudhraja/protoview/wire"
)

// Field numbers
const (
	PhoneNumberNumber wire.FieldNumber = 1
	PhoneNumberType   wire.FieldNumber = 2

	PersonName  wire.FieldNumber = 1
	PersonID    wire.FieldNumber = 2
	PersonPhone wire.FieldNumber = 3

	AddressBookPeople wire.FieldNumber = 1
)

// PhoneNumber is a number and a free-form type label such as "home"
type PhoneNumber struct {
	Number string
	Type   string
}

// AddField implements wire.Sink
func (p *PhoneNumber) AddField(f wire.Field) error {
	var err error
	switch f.Number {
	case PhoneNumberNumber:
		p.Number, err = f.Value.AsString()
	case PhoneNumberType:
		p.Type, err = f.Value.AsString()
	default:
		return unknownField("PhoneNumber", f)
	}
	return err
}

// Person is a named, numbered contact with any number of phones
type Person struct {
	Name   string
	ID     uint64
	Phones []PhoneNumber
}

// AddField implements wire.Sink. Each phone field is decoded as an
// embedded PhoneNumber and appended in wire order.
func (p *Person) AddField(f wire.Field) error {
	switch f.Number {
	case PersonName:
		name, err := f.Value.AsString()
		if err != nil {
			return err
		}
		p.Name = name
	case PersonID:
		id, err := f.Value.AsUint64()
		if err != nil {
			return err
		}
		p.ID = id
	case PersonPhone:
		phone, err := wire.DecodeEmbedded[PhoneNumber](f.Value)
		if err != nil {
			return err
		}
		p.Phones = append(p.Phones, *phone)
	default:
		return unknownField("Person", f)
	}
	return nil
}

// AddressBook is a list of people
type AddressBook struct {
	People []Person
}

// AddField implements wire.Sink
func (b *AddressBook) AddField(f wire.Field) error {
	if f.Number != AddressBookPeople {
		return unknownField("AddressBook", f)
	}
	person, err := wire.DecodeEmbedded[Person](f.Value)
	if err != nil {
		return err
	}
	b.People = append(b.People, *person)
	return nil
}

func unknownField(msg string, f wire.Field) error {
	return fmt.Errorf("%w %d in %s (%s)", wire.ErrUnknownField, f.Number, msg, f.Value.Type)
}

// ParsePerson decodes a Person from data
func ParsePerson(data []byte, opts ...wire.Option) (*Person, error) {
	return wire.DecodeMessage[Person](data, opts...)
}

// ParseAddressBook decodes an AddressBook from data
func ParseAddressBook(data []byte, opts ...wire.Option) (*AddressBook, error) {
	return wire.DecodeMessage[AddressBook](data, opts...)
}
