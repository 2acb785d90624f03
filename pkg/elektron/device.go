package elektron

import (
	"fmt"
	"strings"
)

// Device is the model byte of an Elektron SysEx message.
type Device uint8

const (
	AnalogFour Device = 0x06 // Analog Four MKI/MKII
	Digitone   Device = 0x0D
)

var deviceNames = map[Device]string{
	AnalogFour: "Analog Four",
	Digitone:   "Digitone",
}

var deviceAliases = map[string]Device{
	"a4":         AnalogFour,
	"analogfour": AnalogFour,
	"dn":         Digitone,
	"digitone":   Digitone,
}

// Known reports whether d has a tag table.
func (d Device) Known() bool {
	_, ok := tagLabels[d]
	return ok
}

func (d Device) String() string {
	if name, ok := deviceNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Device(%#02x)", uint8(d))
}

// ParseDevice accepts a short or long device name, ignoring case and spaces.
func ParseDevice(name string) (Device, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	if d, ok := deviceAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w - %q", ErrDeviceUnrecognized, name)
}
