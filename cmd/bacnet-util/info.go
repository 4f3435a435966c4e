package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgeo/protocols/bacnet"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display device information",
	Long: `Info retrieves and displays detailed information about a BACnet device.

Device properties are fetched in a single ReadPropertyMultiple request.

Examples:
  # Get device info
  bacnet-util info -d 1234

  # Get info in JSON format
  bacnet-util info -d 1234 -o json`,

	RunE: runInfo,
}

var infoProperties = []struct {
	name string
	prop bacnet.PropertyIdentifier
}{
	{"Object Name", bacnet.PropertyObjectName},
	{"Description", bacnet.PropertyDescription},
	{"Location", bacnet.PropertyLocation},
	{"Vendor Name", bacnet.PropertyVendorName},
	{"Vendor ID", bacnet.PropertyVendorIdentifier},
	{"Model Name", bacnet.PropertyModelName},
	{"Firmware Revision", bacnet.PropertyFirmwareRevision},
	{"Application Software", bacnet.PropertyApplicationSoftwareVersion},
	{"Protocol Version", bacnet.PropertyProtocolVersion},
	{"Protocol Revision", bacnet.PropertyProtocolRevision},
	{"System Status", bacnet.PropertySystemStatus},
	{"Max APDU Length", bacnet.PropertyMaxApduLengthAccepted},
	{"Segmentation", bacnet.PropertySegmentationSupported},
	{"Local Date", bacnet.PropertyLocalDate},
	{"Local Time", bacnet.PropertyLocalTime},
}

func runInfo(cmd *cobra.Command, args []string) error {
	if deviceID == 0 {
		return fmt.Errorf("device ID is required (-d or --device)")
	}

	client, err := createClient()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout*10)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	deviceOID := bacnet.NewObjectIdentifier(bacnet.ObjectTypeDevice, deviceID)

	props := make([]bacnet.PropertyReference, 0, len(infoProperties))
	for _, p := range infoProperties {
		props = append(props, bacnet.PropertyReference{PropertyID: p.prop})
	}

	results, err := client.ReadPropertyMultiple(ctx, deviceID, []bacnet.ReadAccessSpec{
		{ObjectID: deviceOID, Properties: props},
	})
	if err != nil {
		return fmt.Errorf("read device properties: %w", err)
	}

	info := make(map[string]string)
	for _, obj := range results {
		for _, res := range obj.Results {
			if res.Error != nil {
				continue
			}
			for _, p := range infoProperties {
				if p.prop == res.PropertyID {
					info[p.name] = formatValue(res.Value)
				}
			}
		}
	}

	// Object count is an array read, not part of the multiple read
	readCtx, readCancel := context.WithTimeout(ctx, timeout)
	objCount, err := client.ReadProperty(readCtx, deviceID, deviceOID, bacnet.PropertyObjectList, bacnet.WithArrayIndex(0))
	readCancel()
	if err == nil {
		info["Object Count"] = formatValue(objCount)
	}

	switch outputFmt {
	case "json":
		return outputInfoJSON(info)
	default:
		return outputInfoTable(info)
	}
}

func infoOrder() []string {
	order := make([]string, 0, len(infoProperties)+1)
	for _, p := range infoProperties {
		order = append(order, p.name)
	}
	return append(order, "Object Count")
}

func outputInfoTable(info map[string]string) error {
	f := NewFormatter(outputFmt)
	fmt.Printf("\n=== Device %d ===\n\n", deviceID)
	f.PrintKeyValue(info, infoOrder())
	fmt.Println()
	return nil
}

func outputInfoJSON(info map[string]string) error {
	fmt.Println("{")
	fmt.Printf(`  "device_id": %d,`+"\n", deviceID)
	fmt.Printf(`  "timestamp": %q,`+"\n", time.Now().Format(time.RFC3339))

	order := infoOrder()
	printed := 0
	total := 0
	for _, key := range order {
		if _, ok := info[key]; ok {
			total++
		}
	}
	for _, key := range order {
		val, ok := info[key]
		if !ok {
			continue
		}
		printed++
		comma := ","
		if printed == total {
			comma = ""
		}
		fmt.Printf("  %q: %q%s\n", key, val, comma)
	}
	fmt.Println("}")
	return nil
}
