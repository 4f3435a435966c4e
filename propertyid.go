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

// PropertyIdentifier represents BACnet property identifiers
type PropertyIdentifier uint32

const (
	PropertyAckedTransitions               PropertyIdentifier = 0
	PropertyAckRequired                    PropertyIdentifier = 1
	PropertyAction                         PropertyIdentifier = 2
	PropertyActionText                     PropertyIdentifier = 3
	PropertyActiveText                     PropertyIdentifier = 4
	PropertyActiveVtSessions               PropertyIdentifier = 5
	PropertyAlarmValue                     PropertyIdentifier = 6
	PropertyAlarmValues                    PropertyIdentifier = 7
	PropertyAll                            PropertyIdentifier = 8
	PropertyAllWritesSuccessful            PropertyIdentifier = 9
	PropertyApduSegmentTimeout             PropertyIdentifier = 10
	PropertyApduTimeout                    PropertyIdentifier = 11
	PropertyApplicationSoftwareVersion     PropertyIdentifier = 12
	PropertyArchive                        PropertyIdentifier = 13
	PropertyBias                           PropertyIdentifier = 14
	PropertyChangeOfStateCount             PropertyIdentifier = 15
	PropertyChangeOfStateTime              PropertyIdentifier = 16
	PropertyNotificationClass              PropertyIdentifier = 17
	PropertyControlledVariableReference    PropertyIdentifier = 19
	PropertyControlledVariableUnits        PropertyIdentifier = 20
	PropertyControlledVariableValue        PropertyIdentifier = 21
	PropertyCOVIncrement                   PropertyIdentifier = 22
	PropertyDateList                       PropertyIdentifier = 23
	PropertyDaylightSavingsStatus          PropertyIdentifier = 24
	PropertyDeadband                       PropertyIdentifier = 25
	PropertyDerivativeConstant             PropertyIdentifier = 26
	PropertyDerivativeConstantUnits        PropertyIdentifier = 27
	PropertyDescription                    PropertyIdentifier = 28
	PropertyDescriptionOfHalt              PropertyIdentifier = 29
	PropertyDeviceAddressBinding           PropertyIdentifier = 30
	PropertyDeviceType                     PropertyIdentifier = 31
	PropertyEffectivePeriod                PropertyIdentifier = 32
	PropertyElapsedActiveTime              PropertyIdentifier = 33
	PropertyErrorLimit                     PropertyIdentifier = 34
	PropertyEventEnable                    PropertyIdentifier = 35
	PropertyEventState                     PropertyIdentifier = 36
	PropertyEventType                      PropertyIdentifier = 37
	PropertyExceptionSchedule              PropertyIdentifier = 38
	PropertyFaultValues                    PropertyIdentifier = 39
	PropertyFeedbackValue                  PropertyIdentifier = 40
	PropertyFileAccessMethod               PropertyIdentifier = 41
	PropertyFileSize                       PropertyIdentifier = 42
	PropertyFileType                       PropertyIdentifier = 43
	PropertyFirmwareRevision               PropertyIdentifier = 44
	PropertyHighLimit                      PropertyIdentifier = 45
	PropertyInactiveText                   PropertyIdentifier = 46
	PropertyInProcess                      PropertyIdentifier = 47
	PropertyInstanceOf                     PropertyIdentifier = 48
	PropertyIntegralConstant               PropertyIdentifier = 49
	PropertyIntegralConstantUnits          PropertyIdentifier = 50
	PropertyLimitEnable                    PropertyIdentifier = 52
	PropertyListOfGroupMembers             PropertyIdentifier = 53
	PropertyListOfObjectPropertyReferences PropertyIdentifier = 54
	PropertyLocalDate                      PropertyIdentifier = 56
	PropertyLocalTime                      PropertyIdentifier = 57
	PropertyLocation                       PropertyIdentifier = 58
	PropertyLowLimit                       PropertyIdentifier = 59
	PropertyManipulatedVariableReference   PropertyIdentifier = 60
	PropertyMaximumOutput                  PropertyIdentifier = 61
	PropertyMaxApduLengthAccepted          PropertyIdentifier = 62
	PropertyMaxInfoFrames                  PropertyIdentifier = 63
	PropertyMaxMaster                      PropertyIdentifier = 64
	PropertyMaxPresValue                   PropertyIdentifier = 65
	PropertyMinimumOffTime                 PropertyIdentifier = 66
	PropertyMinimumOnTime                  PropertyIdentifier = 67
	PropertyMinimumOutput                  PropertyIdentifier = 68
	PropertyMinPresValue                   PropertyIdentifier = 69
	PropertyModelName                      PropertyIdentifier = 70
	PropertyModificationDate               PropertyIdentifier = 71
	PropertyNotifyType                     PropertyIdentifier = 72
	PropertyNumberOfApduRetries            PropertyIdentifier = 73
	PropertyNumberOfStates                 PropertyIdentifier = 74
	PropertyObjectIdentifier               PropertyIdentifier = 75
	PropertyObjectList                     PropertyIdentifier = 76
	PropertyObjectName                     PropertyIdentifier = 77
	PropertyObjectPropertyReference        PropertyIdentifier = 78
	PropertyObjectType                     PropertyIdentifier = 79
	PropertyOptional                       PropertyIdentifier = 80
	PropertyOutOfService                   PropertyIdentifier = 81
	PropertyOutputUnits                    PropertyIdentifier = 82
	PropertyEventParameters                PropertyIdentifier = 83
	PropertyPolarity                       PropertyIdentifier = 84
	PropertyPresentValue                   PropertyIdentifier = 85
	PropertyPriority                       PropertyIdentifier = 86
	PropertyPriorityArray                  PropertyIdentifier = 87
	PropertyPriorityForWriting             PropertyIdentifier = 88
	PropertyProcessIdentifier              PropertyIdentifier = 89
	PropertyProgramChange                  PropertyIdentifier = 90
	PropertyProgramLocation                PropertyIdentifier = 91
	PropertyProgramState                   PropertyIdentifier = 92
	PropertyProportionalConstant           PropertyIdentifier = 93
	PropertyProportionalConstantUnits      PropertyIdentifier = 94
	PropertyProtocolObjectTypesSupported   PropertyIdentifier = 96
	PropertyProtocolServicesSupported      PropertyIdentifier = 97
	PropertyProtocolVersion                PropertyIdentifier = 98
	PropertyReadOnly                       PropertyIdentifier = 99
	PropertyReasonForHalt                  PropertyIdentifier = 100
	PropertyRecipientList                  PropertyIdentifier = 102
	PropertyReliability                    PropertyIdentifier = 103
	PropertyRelinquishDefault              PropertyIdentifier = 104
	PropertyRequired                       PropertyIdentifier = 105
	PropertyResolution                     PropertyIdentifier = 106
	PropertySegmentationSupported          PropertyIdentifier = 107
	PropertySetpoint                       PropertyIdentifier = 108
	PropertySetpointReference              PropertyIdentifier = 109
	PropertyStateText                      PropertyIdentifier = 110
	PropertyStatusFlags                    PropertyIdentifier = 111
	PropertySystemStatus                   PropertyIdentifier = 112
	PropertyTimeDelay                      PropertyIdentifier = 113
	PropertyTimeOfActiveTimeReset          PropertyIdentifier = 114
	PropertyTimeOfStateCountReset          PropertyIdentifier = 115
	PropertyTimeSynchronizationRecipients  PropertyIdentifier = 116
	PropertyUnits                          PropertyIdentifier = 117
	PropertyUpdateInterval                 PropertyIdentifier = 118
	PropertyUtcOffset                      PropertyIdentifier = 119
	PropertyVendorIdentifier               PropertyIdentifier = 120
	PropertyVendorName                     PropertyIdentifier = 121
	PropertyVtClassesSupported             PropertyIdentifier = 122
	PropertyWeeklySchedule                 PropertyIdentifier = 123
	PropertyAttemptedSamples               PropertyIdentifier = 124
	PropertyAverageValue                   PropertyIdentifier = 125
	PropertyBufferSize                     PropertyIdentifier = 126
	PropertyClientCovIncrement             PropertyIdentifier = 127
	PropertyCOVResubscriptionInterval      PropertyIdentifier = 128
	PropertyEventTimeStamps                PropertyIdentifier = 130
	PropertyLogBuffer                      PropertyIdentifier = 131
	PropertyLogDeviceObjectProperty        PropertyIdentifier = 132
	PropertyLogEnable                      PropertyIdentifier = 133
	PropertyLogInterval                    PropertyIdentifier = 134
	PropertyProtocolRevision               PropertyIdentifier = 139
	PropertyRecordCount                    PropertyIdentifier = 141
	PropertyStartTime                      PropertyIdentifier = 142
	PropertyStopTime                       PropertyIdentifier = 143
	PropertyStopWhenFull                   PropertyIdentifier = 144
	PropertyTotalRecordCount               PropertyIdentifier = 145
	PropertyValidSamples                   PropertyIdentifier = 146
	PropertyDatabaseRevision               PropertyIdentifier = 155
	PropertyLastRestoreTime                PropertyIdentifier = 157
	PropertyProfileName                    PropertyIdentifier = 168
	PropertyLoggingType                    PropertyIdentifier = 197
)

func (p PropertyIdentifier) String() string {
	names := map[PropertyIdentifier]string{
		PropertyObjectIdentifier:           "object-identifier",
		PropertyObjectName:                 "object-name",
		PropertyObjectType:                 "object-type",
		PropertyPresentValue:               "present-value",
		PropertyDescription:                "description",
		PropertyDeviceType:                 "device-type",
		PropertyStatusFlags:                "status-flags",
		PropertyEventState:                 "event-state",
		PropertyReliability:                "reliability",
		PropertyOutOfService:               "out-of-service",
		PropertyUnits:                      "units",
		PropertyPriorityArray:              "priority-array",
		PropertyRelinquishDefault:          "relinquish-default",
		PropertyCOVIncrement:               "cov-increment",
		PropertyHighLimit:                  "high-limit",
		PropertyLowLimit:                   "low-limit",
		PropertyDeadband:                   "deadband",
		PropertyVendorName:                 "vendor-name",
		PropertyVendorIdentifier:           "vendor-identifier",
		PropertyModelName:                  "model-name",
		PropertyFirmwareRevision:           "firmware-revision",
		PropertyApplicationSoftwareVersion: "application-software-version",
		PropertyProtocolVersion:            "protocol-version",
		PropertyProtocolRevision:           "protocol-revision",
		PropertySystemStatus:               "system-status",
		PropertyMaxApduLengthAccepted:      "max-apdu-length-accepted",
		PropertySegmentationSupported:      "segmentation-supported",
		PropertyObjectList:                 "object-list",
		PropertyDatabaseRevision:           "database-revision",
		PropertyLocalDate:                  "local-date",
		PropertyLocalTime:                  "local-time",
		PropertyNotifyType:                 "notify-type",
		PropertyLoggingType:                "logging-type",
		PropertyWeeklySchedule:             "weekly-schedule",
		PropertyLogBuffer:                  "log-buffer",
		PropertyAll:                        "all",
		PropertyRequired:                   "required",
		PropertyOptional:                   "optional",
	}
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("property(%d)", p)
}

// ParsePropertyIdentifier parses a string to PropertyIdentifier
func ParsePropertyIdentifier(s string) (PropertyIdentifier, bool) {
	props := map[string]PropertyIdentifier{
		"object-identifier":            PropertyObjectIdentifier,
		"oid":                          PropertyObjectIdentifier,
		"object-name":                  PropertyObjectName,
		"name":                         PropertyObjectName,
		"object-type":                  PropertyObjectType,
		"type":                         PropertyObjectType,
		"present-value":                PropertyPresentValue,
		"pv":                           PropertyPresentValue,
		"description":                  PropertyDescription,
		"desc":                         PropertyDescription,
		"status-flags":                 PropertyStatusFlags,
		"sf":                           PropertyStatusFlags,
		"event-state":                  PropertyEventState,
		"reliability":                  PropertyReliability,
		"out-of-service":               PropertyOutOfService,
		"oos":                          PropertyOutOfService,
		"units":                        PropertyUnits,
		"priority-array":               PropertyPriorityArray,
		"pa":                           PropertyPriorityArray,
		"relinquish-default":           PropertyRelinquishDefault,
		"rd":                           PropertyRelinquishDefault,
		"cov-increment":                PropertyCOVIncrement,
		"vendor-name":                  PropertyVendorName,
		"vendor-identifier":            PropertyVendorIdentifier,
		"model-name":                   PropertyModelName,
		"firmware-revision":            PropertyFirmwareRevision,
		"application-software-version": PropertyApplicationSoftwareVersion,
		"protocol-version":             PropertyProtocolVersion,
		"protocol-revision":            PropertyProtocolRevision,
		"system-status":                PropertySystemStatus,
		"object-list":                  PropertyObjectList,
		"database-revision":            PropertyDatabaseRevision,
		"local-date":                   PropertyLocalDate,
		"local-time":                   PropertyLocalTime,
		"weekly-schedule":              PropertyWeeklySchedule,
		"all":                          PropertyAll,
	}
	if p, ok := props[s]; ok {
		return p, true
	}
	return 0, false
}
