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

// StatusFlags represents the BACnet status flags
type StatusFlags struct {
	InAlarm      bool
	Fault        bool
	Overridden   bool
	OutOfService bool
}

// DecodeStatusFlags decodes a flag byte to StatusFlags
func DecodeStatusFlags(b byte) StatusFlags {
	return StatusFlags{
		InAlarm:      b&0x08 != 0,
		Fault:        b&0x04 != 0,
		Overridden:   b&0x02 != 0,
		OutOfService: b&0x01 != 0,
	}
}

func (s StatusFlags) encodeByte() byte {
	var b byte
	if s.InAlarm {
		b |= 0x08
	}
	if s.Fault {
		b |= 0x04
	}
	if s.Overridden {
		b |= 0x02
	}
	if s.OutOfService {
		b |= 0x01
	}
	return b
}

func (s StatusFlags) String() string {
	return fmt.Sprintf("{in-alarm:%v, fault:%v, overridden:%v, out-of-service:%v}",
		s.InAlarm, s.Fault, s.Overridden, s.OutOfService)
}

// LogBufferResultFlags qualifies the records returned by a ReadRange of a
// trend log buffer.
type LogBufferResultFlags struct {
	FirstItem bool
	LastItem  bool
	MoreItems bool
}

// DecodeLogBufferResultFlags decodes a flag byte to LogBufferResultFlags
func DecodeLogBufferResultFlags(b byte) LogBufferResultFlags {
	return LogBufferResultFlags{
		FirstItem: b&0x04 != 0,
		LastItem:  b&0x02 != 0,
		MoreItems: b&0x01 != 0,
	}
}

func (f LogBufferResultFlags) encodeByte() byte {
	var b byte
	if f.FirstItem {
		b |= 0x04
	}
	if f.LastItem {
		b |= 0x02
	}
	if f.MoreItems {
		b |= 0x01
	}
	return b
}

func (f LogBufferResultFlags) String() string {
	return fmt.Sprintf("{first-item:%v, last-item:%v, more-items:%v}",
		f.FirstItem, f.LastItem, f.MoreItems)
}

// Binary represents the present value of a binary object
type Binary uint8

const (
	BinaryInactive Binary = 0
	BinaryActive   Binary = 1
)

func (b Binary) String() string {
	switch b {
	case BinaryInactive:
		return "inactive"
	case BinaryActive:
		return "active"
	}
	return fmt.Sprintf("binary(%d)", b)
}

// EventState represents the BACnet event state
type EventState uint8

const (
	EventStateNormal          EventState = 0
	EventStateFault           EventState = 1
	EventStateOffNormal       EventState = 2
	EventStateHighLimit       EventState = 3
	EventStateLowLimit        EventState = 4
	EventStateLifeSafetyAlarm EventState = 5
)

const maxKnownEventState = EventStateLifeSafetyAlarm

func (e EventState) String() string {
	names := map[EventState]string{
		EventStateNormal:          "normal",
		EventStateFault:           "fault",
		EventStateOffNormal:       "off-normal",
		EventStateHighLimit:       "high-limit",
		EventStateLowLimit:        "low-limit",
		EventStateLifeSafetyAlarm: "life-safety-alarm",
	}
	if name, ok := names[e]; ok {
		return name
	}
	return fmt.Sprintf("event-state(%d)", e)
}

// NotifyType represents the BACnet notify type
type NotifyType uint8

const (
	NotifyTypeAlarm           NotifyType = 0
	NotifyTypeEvent           NotifyType = 1
	NotifyTypeAckNotification NotifyType = 2
)

const maxKnownNotifyType = NotifyTypeAckNotification

func (n NotifyType) String() string {
	names := map[NotifyType]string{
		NotifyTypeAlarm:           "alarm",
		NotifyTypeEvent:           "event",
		NotifyTypeAckNotification: "ack-notification",
	}
	if name, ok := names[n]; ok {
		return name
	}
	return fmt.Sprintf("notify-type(%d)", n)
}

// LoggingType represents the acquisition method of a trend log
type LoggingType uint8

const (
	LoggingTypePolled    LoggingType = 0
	LoggingTypeCov       LoggingType = 1
	LoggingTypeTriggered LoggingType = 2
)

const maxKnownLoggingType = LoggingTypeTriggered

func (l LoggingType) String() string {
	names := map[LoggingType]string{
		LoggingTypePolled:    "polled",
		LoggingTypeCov:       "cov",
		LoggingTypeTriggered: "triggered",
	}
	if name, ok := names[l]; ok {
		return name
	}
	return fmt.Sprintf("logging-type(%d)", l)
}

// Reliability represents the BACnet reliability
type Reliability uint8

const (
	ReliabilityNoFaultDetected               Reliability = 0
	ReliabilityNoSensor                      Reliability = 1
	ReliabilityOverRange                     Reliability = 2
	ReliabilityUnderRange                    Reliability = 3
	ReliabilityOpenLoop                      Reliability = 4
	ReliabilityShortedLoop                   Reliability = 5
	ReliabilityNoOutput                      Reliability = 6
	ReliabilityUnreliableOther               Reliability = 7
	ReliabilityProcessError                  Reliability = 8
	ReliabilityMultiStateFault               Reliability = 9
	ReliabilityConfigurationError            Reliability = 10
	ReliabilityCommunicationFailure          Reliability = 12
	ReliabilityMemberFault                   Reliability = 13
	ReliabilityMonitoredObjectFault          Reliability = 14
	ReliabilityTripped                       Reliability = 15
	ReliabilityLampFailure                   Reliability = 16
	ReliabilityActivationFailure             Reliability = 17
	ReliabilityRenewDhcpFailure              Reliability = 18
	ReliabilityRenewFdRegistrationFailure    Reliability = 19
	ReliabilityRestartAutoNegotiationFailure Reliability = 20
	ReliabilityRestartFailure                Reliability = 21
	ReliabilityProprietaryCommandFailure     Reliability = 22
	ReliabilityFaultsListed                  Reliability = 23
	ReliabilityReferencedObjectFault         Reliability = 24
)

func (r Reliability) String() string {
	names := map[Reliability]string{
		ReliabilityNoFaultDetected:      "no-fault-detected",
		ReliabilityNoSensor:             "no-sensor",
		ReliabilityOverRange:            "over-range",
		ReliabilityUnderRange:           "under-range",
		ReliabilityOpenLoop:             "open-loop",
		ReliabilityShortedLoop:          "shorted-loop",
		ReliabilityNoOutput:             "no-output",
		ReliabilityUnreliableOther:      "unreliable-other",
		ReliabilityProcessError:         "process-error",
		ReliabilityMultiStateFault:      "multi-state-fault",
		ReliabilityConfigurationError:   "configuration-error",
		ReliabilityCommunicationFailure: "communication-failure",
	}
	if name, ok := names[r]; ok {
		return name
	}
	return fmt.Sprintf("reliability(%d)", r)
}

// EngineeringUnits represents BACnet engineering units
type EngineeringUnits uint16

const (
	UnitsSquareMeters                  EngineeringUnits = 0
	UnitsSquareFeet                    EngineeringUnits = 1
	UnitsMilliamperes                  EngineeringUnits = 2
	UnitsAmperes                       EngineeringUnits = 3
	UnitsOhms                          EngineeringUnits = 4
	UnitsVolts                         EngineeringUnits = 5
	UnitsKilovolts                     EngineeringUnits = 6
	UnitsMegavolts                     EngineeringUnits = 7
	UnitsVoltAmperes                   EngineeringUnits = 8
	UnitsKilovoltAmperes               EngineeringUnits = 9
	UnitsMegavoltAmperes               EngineeringUnits = 10
	UnitsVoltAmperesReactive           EngineeringUnits = 11
	UnitsKilovoltAmperesReactive       EngineeringUnits = 12
	UnitsMegavoltAmperesReactive       EngineeringUnits = 13
	UnitsDegreesPhase                  EngineeringUnits = 14
	UnitsPowerFactor                   EngineeringUnits = 15
	UnitsJoules                        EngineeringUnits = 16
	UnitsKilojoules                    EngineeringUnits = 17
	UnitsWattHours                     EngineeringUnits = 18
	UnitsKilowattHours                 EngineeringUnits = 19
	UnitsBtus                          EngineeringUnits = 20
	UnitsTherms                        EngineeringUnits = 21
	UnitsTonHours                      EngineeringUnits = 22
	UnitsJoulesPerKilogramDryAir       EngineeringUnits = 23
	UnitsBtusPerPoundDryAir            EngineeringUnits = 24
	UnitsCyclesPerHour                 EngineeringUnits = 25
	UnitsCyclesPerMinute               EngineeringUnits = 26
	UnitsHertz                         EngineeringUnits = 27
	UnitsGramsOfWaterPerKilogramDryAir EngineeringUnits = 28
	UnitsPercentRelativeHumidity       EngineeringUnits = 29
	UnitsMillimeters                   EngineeringUnits = 30
	UnitsMeters                        EngineeringUnits = 31
	UnitsInches                        EngineeringUnits = 32
	UnitsFeet                          EngineeringUnits = 33
	UnitsWattsPerSquareFoot            EngineeringUnits = 34
	UnitsWattsPerSquareMeter           EngineeringUnits = 35
	UnitsLumens                        EngineeringUnits = 36
	UnitsLuxes                         EngineeringUnits = 37
	UnitsFootCandles                   EngineeringUnits = 38
	UnitsKilograms                     EngineeringUnits = 39
	UnitsPounds                        EngineeringUnits = 40
	UnitsWatts                         EngineeringUnits = 41
	UnitsKilowatts                     EngineeringUnits = 42
	UnitsMegawatts                     EngineeringUnits = 43
	UnitsBtusPerHour                   EngineeringUnits = 44
	UnitsHorsepower                    EngineeringUnits = 45
	UnitsTonsRefrigeration             EngineeringUnits = 46
	UnitsPascals                       EngineeringUnits = 47
	UnitsKilopascals                   EngineeringUnits = 48
	UnitsBars                          EngineeringUnits = 49
	UnitsPoundsForcePerSquareInch      EngineeringUnits = 50
	UnitsCentimetersOfWater            EngineeringUnits = 51
	UnitsInchesOfWater                 EngineeringUnits = 52
	UnitsMillimetersOfMercury          EngineeringUnits = 53
	UnitsCentimetersOfMercury          EngineeringUnits = 54
	UnitsInchesOfMercury               EngineeringUnits = 55
	UnitsDegreesCelsius                EngineeringUnits = 62
	UnitsDegreesKelvin                 EngineeringUnits = 63
	UnitsDegreesFahrenheit             EngineeringUnits = 64
	UnitsDegreeDaysCelsius             EngineeringUnits = 65
	UnitsDegreeDaysFahrenheit          EngineeringUnits = 66
	UnitsYears                         EngineeringUnits = 67
	UnitsMonths                        EngineeringUnits = 68
	UnitsWeeks                         EngineeringUnits = 69
	UnitsDays                          EngineeringUnits = 70
	UnitsHours                         EngineeringUnits = 71
	UnitsMinutes                       EngineeringUnits = 72
	UnitsSeconds                       EngineeringUnits = 73
	UnitsMetersPerSecond               EngineeringUnits = 74
	UnitsKilometersPerHour             EngineeringUnits = 75
	UnitsFeetPerSecond                 EngineeringUnits = 76
	UnitsFeetPerMinute                 EngineeringUnits = 77
	UnitsMilesPerHour                  EngineeringUnits = 78
	UnitsCubicFeet                     EngineeringUnits = 79
	UnitsCubicMeters                   EngineeringUnits = 80
	UnitsImperialGallons               EngineeringUnits = 81
	UnitsLiters                        EngineeringUnits = 82
	UnitsUsGallons                     EngineeringUnits = 83
	UnitsCubicFeetPerMinute            EngineeringUnits = 84
	UnitsCubicMetersPerSecond          EngineeringUnits = 85
	UnitsImperialGallonsPerMinute      EngineeringUnits = 86
	UnitsLitersPerSecond               EngineeringUnits = 87
	UnitsLitersPerMinute               EngineeringUnits = 88
	UnitsUsGallonsPerMinute            EngineeringUnits = 89
	UnitsDegreesAngular                EngineeringUnits = 90
	UnitsDegreesCelsiusPerHour         EngineeringUnits = 91
	UnitsDegreesCelsiusPerMinute       EngineeringUnits = 92
	UnitsDegreesFahrenheitPerHour      EngineeringUnits = 93
	UnitsDegreesFahrenheitPerMinute    EngineeringUnits = 94
	UnitsNoUnits                       EngineeringUnits = 95
	UnitsPartsPerMillion               EngineeringUnits = 96
	UnitsPartsPerBillion               EngineeringUnits = 97
	UnitsPercent                       EngineeringUnits = 98
	UnitsPercentPerSecond              EngineeringUnits = 99
	UnitsPerMinute                     EngineeringUnits = 100
	UnitsPerSecond                     EngineeringUnits = 101
	UnitsPsiPerDegreeFahrenheit        EngineeringUnits = 102
	UnitsRadians                       EngineeringUnits = 103
	UnitsRevolutionsPerMinute          EngineeringUnits = 104
)

const maxKnownEngineeringUnits = UnitsRevolutionsPerMinute

func (u EngineeringUnits) String() string {
	names := map[EngineeringUnits]string{
		UnitsDegreesCelsius:          "°C",
		UnitsDegreesFahrenheit:       "°F",
		UnitsDegreesKelvin:           "K",
		UnitsPercent:                 "%",
		UnitsPercentRelativeHumidity: "%RH",
		UnitsMeters:                  "m",
		UnitsFeet:                    "ft",
		UnitsMillimeters:             "mm",
		UnitsInches:                  "in",
		UnitsVolts:                   "V",
		UnitsAmperes:                 "A",
		UnitsMilliamperes:            "mA",
		UnitsWatts:                   "W",
		UnitsKilowatts:               "kW",
		UnitsMegawatts:               "MW",
		UnitsKilowattHours:           "kWh",
		UnitsHertz:                   "Hz",
		UnitsPascals:                 "Pa",
		UnitsKilopascals:             "kPa",
		UnitsBars:                    "bar",
		UnitsLiters:                  "L",
		UnitsCubicMeters:             "m³",
		UnitsLitersPerSecond:         "L/s",
		UnitsLitersPerMinute:         "L/min",
		UnitsMetersPerSecond:         "m/s",
		UnitsSeconds:                 "s",
		UnitsMinutes:                 "min",
		UnitsHours:                   "h",
		UnitsDays:                    "d",
		UnitsNoUnits:                 "",
	}
	if name, ok := names[u]; ok {
		return name
	}
	return fmt.Sprintf("units(%d)", u)
}

// Segmentation represents the BACnet segmentation capability
type Segmentation uint8

const (
	SegmentationBoth     Segmentation = 0
	SegmentationTransmit Segmentation = 1
	SegmentationReceive  Segmentation = 2
	SegmentationNone     Segmentation = 3
)

func (s Segmentation) String() string {
	names := map[Segmentation]string{
		SegmentationBoth:     "segmented-both",
		SegmentationTransmit: "segmented-transmit",
		SegmentationReceive:  "segmented-receive",
		SegmentationNone:     "no-segmentation",
	}
	if name, ok := names[s]; ok {
		return name
	}
	return fmt.Sprintf("segmentation(%d)", s)
}

// DeviceStatus represents the BACnet device status
type DeviceStatus uint8

const (
	DeviceStatusOperational         DeviceStatus = 0
	DeviceStatusOperationalReadOnly DeviceStatus = 1
	DeviceStatusDownloadRequired    DeviceStatus = 2
	DeviceStatusDownloadInProgress  DeviceStatus = 3
	DeviceStatusNonOperational      DeviceStatus = 4
	DeviceStatusBackupInProgress    DeviceStatus = 5
)

func (d DeviceStatus) String() string {
	names := map[DeviceStatus]string{
		DeviceStatusOperational:         "operational",
		DeviceStatusOperationalReadOnly: "operational-read-only",
		DeviceStatusDownloadRequired:    "download-required",
		DeviceStatusDownloadInProgress:  "download-in-progress",
		DeviceStatusNonOperational:      "non-operational",
		DeviceStatusBackupInProgress:    "backup-in-progress",
	}
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("device-status(%d)", d)
}
