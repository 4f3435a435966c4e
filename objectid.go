// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bacnet

import "fmt"

// ObjectType represents BACnet object types
type ObjectType uint16

const (
	ObjectTypeAnalogInput          ObjectType = 0
	ObjectTypeAnalogOutput         ObjectType = 1
	ObjectTypeAnalogValue          ObjectType = 2
	ObjectTypeBinaryInput          ObjectType = 3
	ObjectTypeBinaryOutput         ObjectType = 4
	ObjectTypeBinaryValue          ObjectType = 5
	ObjectTypeCalendar             ObjectType = 6
	ObjectTypeCommand              ObjectType = 7
	ObjectTypeDevice               ObjectType = 8
	ObjectTypeEventEnrollment      ObjectType = 9
	ObjectTypeFile                 ObjectType = 10
	ObjectTypeGroup                ObjectType = 11
	ObjectTypeLoop                 ObjectType = 12
	ObjectTypeMultiStateInput      ObjectType = 13
	ObjectTypeMultiStateOutput     ObjectType = 14
	ObjectTypeNotificationClass    ObjectType = 15
	ObjectTypeProgram              ObjectType = 16
	ObjectTypeSchedule             ObjectType = 17
	ObjectTypeAveraging            ObjectType = 18
	ObjectTypeMultiStateValue      ObjectType = 19
	ObjectTypeTrendLog             ObjectType = 20
	ObjectTypeLifeSafetyPoint      ObjectType = 21
	ObjectTypeLifeSafetyZone       ObjectType = 22
	ObjectTypeAccumulator          ObjectType = 23
	ObjectTypePulseConverter       ObjectType = 24
	ObjectTypeEventLog             ObjectType = 25
	ObjectTypeGlobalGroup          ObjectType = 26
	ObjectTypeTrendLogMultiple     ObjectType = 27
	ObjectTypeLoadControl          ObjectType = 28
	ObjectTypeStructuredView       ObjectType = 29
	ObjectTypeAccessDoor           ObjectType = 30
	ObjectTypeTimer                ObjectType = 31
	ObjectTypeAccessCredential     ObjectType = 32
	ObjectTypeAccessPoint          ObjectType = 33
	ObjectTypeAccessRights         ObjectType = 34
	ObjectTypeAccessUser           ObjectType = 35
	ObjectTypeAccessZone           ObjectType = 36
	ObjectTypeCredentialDataInput  ObjectType = 37
	ObjectTypeNetworkSecurity      ObjectType = 38
	ObjectTypeBitStringValue       ObjectType = 39
	ObjectTypeCharacterStringValue ObjectType = 40
	ObjectTypeDatePatternValue     ObjectType = 41
	ObjectTypeDateValue            ObjectType = 42
	ObjectTypeDateTimePatternValue ObjectType = 43
	ObjectTypeDateTimeValue        ObjectType = 44
	ObjectTypeIntegerValue         ObjectType = 45
	ObjectTypeLargeAnalogValue     ObjectType = 46
	ObjectTypeOctetStringValue     ObjectType = 47
	ObjectTypePositiveIntegerValue ObjectType = 48
	ObjectTypeTimePatternValue     ObjectType = 49
	ObjectTypeTimeValue            ObjectType = 50
	ObjectTypeNotificationForwarder ObjectType = 51
	ObjectTypeAlertEnrollment      ObjectType = 52
	ObjectTypeChannel              ObjectType = 53
	ObjectTypeLightingOutput       ObjectType = 54
	ObjectTypeBinaryLightingOutput ObjectType = 55
	ObjectTypeNetworkPort          ObjectType = 56
	ObjectTypeElevatorGroup        ObjectType = 57
	ObjectTypeEscalator            ObjectType = 58
	ObjectTypeLift                 ObjectType = 59
)

// maxKnownObjectType bounds the standard object type codes this package
// models; higher codes are vendor specific.
const maxKnownObjectType = ObjectTypeLift

func (o ObjectType) String() string {
	names := map[ObjectType]string{
		ObjectTypeAnalogInput:          "analog-input",
		ObjectTypeAnalogOutput:         "analog-output",
		ObjectTypeAnalogValue:          "analog-value",
		ObjectTypeBinaryInput:          "binary-input",
		ObjectTypeBinaryOutput:         "binary-output",
		ObjectTypeBinaryValue:          "binary-value",
		ObjectTypeCalendar:             "calendar",
		ObjectTypeCommand:              "command",
		ObjectTypeDevice:               "device",
		ObjectTypeEventEnrollment:      "event-enrollment",
		ObjectTypeFile:                 "file",
		ObjectTypeGroup:                "group",
		ObjectTypeLoop:                 "loop",
		ObjectTypeMultiStateInput:      "multi-state-input",
		ObjectTypeMultiStateOutput:     "multi-state-output",
		ObjectTypeNotificationClass:    "notification-class",
		ObjectTypeProgram:              "program",
		ObjectTypeSchedule:             "schedule",
		ObjectTypeAveraging:            "averaging",
		ObjectTypeMultiStateValue:      "multi-state-value",
		ObjectTypeTrendLog:             "trend-log",
		ObjectTypeLifeSafetyPoint:      "life-safety-point",
		ObjectTypeLifeSafetyZone:       "life-safety-zone",
		ObjectTypeAccumulator:          "accumulator",
		ObjectTypePulseConverter:       "pulse-converter",
		ObjectTypeEventLog:             "event-log",
		ObjectTypeGlobalGroup:          "global-group",
		ObjectTypeTrendLogMultiple:     "trend-log-multiple",
		ObjectTypeLoadControl:          "load-control",
		ObjectTypeStructuredView:       "structured-view",
		ObjectTypeAccessDoor:           "access-door",
		ObjectTypeTimer:                "timer",
		ObjectTypeAccessCredential:     "access-credential",
		ObjectTypeAccessPoint:          "access-point",
		ObjectTypeAccessRights:         "access-rights",
		ObjectTypeAccessUser:           "access-user",
		ObjectTypeAccessZone:           "access-zone",
		ObjectTypeCredentialDataInput:  "credential-data-input",
		ObjectTypeNetworkSecurity:      "network-security",
		ObjectTypeBitStringValue:       "bitstring-value",
		ObjectTypeCharacterStringValue: "characterstring-value",
		ObjectTypeDatePatternValue:     "date-pattern-value",
		ObjectTypeDateValue:            "date-value",
		ObjectTypeDateTimePatternValue: "datetime-pattern-value",
		ObjectTypeDateTimeValue:        "datetime-value",
		ObjectTypeIntegerValue:         "integer-value",
		ObjectTypeLargeAnalogValue:     "large-analog-value",
		ObjectTypeOctetStringValue:     "octetstring-value",
		ObjectTypePositiveIntegerValue: "positive-integer-value",
		ObjectTypeTimePatternValue:     "time-pattern-value",
		ObjectTypeTimeValue:            "time-value",
		ObjectTypeNotificationForwarder: "notification-forwarder",
		ObjectTypeAlertEnrollment:      "alert-enrollment",
		ObjectTypeChannel:              "channel",
		ObjectTypeLightingOutput:       "lighting-output",
		ObjectTypeBinaryLightingOutput: "binary-lighting-output",
		ObjectTypeNetworkPort:          "network-port",
		ObjectTypeElevatorGroup:        "elevator-group",
		ObjectTypeEscalator:            "escalator",
		ObjectTypeLift:                 "lift",
	}
	if name, ok := names[o]; ok {
		return name
	}
	return fmt.Sprintf("vendor-specific(%d)", o)
}

// ParseObjectType parses a string to ObjectType
func ParseObjectType(s string) (ObjectType, bool) {
	types := map[string]ObjectType{
		"analog-input":       ObjectTypeAnalogInput,
		"ai":                 ObjectTypeAnalogInput,
		"analog-output":      ObjectTypeAnalogOutput,
		"ao":                 ObjectTypeAnalogOutput,
		"analog-value":       ObjectTypeAnalogValue,
		"av":                 ObjectTypeAnalogValue,
		"binary-input":       ObjectTypeBinaryInput,
		"bi":                 ObjectTypeBinaryInput,
		"binary-output":      ObjectTypeBinaryOutput,
		"bo":                 ObjectTypeBinaryOutput,
		"binary-value":       ObjectTypeBinaryValue,
		"bv":                 ObjectTypeBinaryValue,
		"device":             ObjectTypeDevice,
		"dev":                ObjectTypeDevice,
		"multi-state-input":  ObjectTypeMultiStateInput,
		"msi":                ObjectTypeMultiStateInput,
		"multi-state-output": ObjectTypeMultiStateOutput,
		"mso":                ObjectTypeMultiStateOutput,
		"multi-state-value":  ObjectTypeMultiStateValue,
		"msv":                ObjectTypeMultiStateValue,
		"schedule":           ObjectTypeSchedule,
		"sch":                ObjectTypeSchedule,
		"trend-log":          ObjectTypeTrendLog,
		"tl":                 ObjectTypeTrendLog,
		"calendar":           ObjectTypeCalendar,
		"cal":                ObjectTypeCalendar,
		"notification-class": ObjectTypeNotificationClass,
		"nc":                 ObjectTypeNotificationClass,
		"file":               ObjectTypeFile,
		"loop":               ObjectTypeLoop,
		"program":            ObjectTypeProgram,
		"prg":                ObjectTypeProgram,
	}
	if t, ok := types[s]; ok {
		return t, true
	}
	return 0, false
}

// ObjectIdentifier packs a 10-bit object type code and a 22-bit instance
// number into one 32-bit wire field.
type ObjectIdentifier struct {
	Type     ObjectType
	Instance uint32
}

const objectIDLen = 4

// NewObjectIdentifier creates a new ObjectIdentifier
func NewObjectIdentifier(objectType ObjectType, instance uint32) ObjectIdentifier {
	return ObjectIdentifier{
		Type:     objectType,
		Instance: instance,
	}
}

// Pack returns the 32-bit wire representation.
func (o ObjectIdentifier) Pack() uint32 {
	return (uint32(o.Type) << 22) | (o.Instance & 0x3FFFFF)
}

// UnpackObjectIdentifier splits a 32-bit wire value into type and instance.
func UnpackObjectIdentifier(value uint32) ObjectIdentifier {
	return ObjectIdentifier{
		Type:     ObjectType((value >> 22) & 0x3FF),
		Instance: value & 0x3FFFFF,
	}
}

func (o ObjectIdentifier) String() string {
	return fmt.Sprintf("%s:%d", o.Type.String(), o.Instance)
}

// encodeValue writes the packed 4-byte form without a tag.
func (o ObjectIdentifier) encodeValue(w *Writer) error {
	v := o.Pack()
	return w.Append(byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v))
}

// decodeObjectIdentifier reads the packed form; the declared tag length must
// be exactly 4 bytes.
func decodeObjectIdentifier(length uint32, r *Reader) (ObjectIdentifier, error) {
	if length != objectIDLen {
		return ObjectIdentifier{}, fmt.Errorf("%w: object identifier length %d", ErrInvalidValue, length)
	}
	s, err := r.ReadSlice(objectIDLen)
	if err != nil {
		return ObjectIdentifier{}, err
	}
	v := uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])
	return UnpackObjectIdentifier(v), nil
}

// encodeContextObjectID writes a context-tagged object identifier.
func encodeContextObjectID(w *Writer, number uint8, oid ObjectIdentifier) error {
	if err := contextTag(number, objectIDLen).Encode(w); err != nil {
		return err
	}
	return oid.encodeValue(w)
}

// decodeContextObjectID reads a context-tagged object identifier.
func decodeContextObjectID(r *Reader, number uint8) (ObjectIdentifier, error) {
	tag, err := expectContextTag(r, number)
	if err != nil {
		return ObjectIdentifier{}, err
	}
	return decodeObjectIdentifier(tag.Value, r)
}
