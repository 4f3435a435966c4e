package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgeo/protocols/bacnet"
)

var rpmCmd = &cobra.Command{
	Use:   "rpm object:property[,property...] [object:property...]",
	Short: "Read multiple properties in a single request",
	Long: `Rpm issues one ReadPropertyMultiple request covering every listed
object and property, which is considerably faster than repeated reads
against devices that support it.

Each argument names an object and a comma-separated property list:
  <type>:<instance>:<property>[,<property>...]

Examples:
  # Present value and units from two analog inputs
  bacnet-util rpm -d 1234 ai:1:present-value,units ai:2:present-value,units

  # Device clock
  bacnet-util rpm -d 1234 device:1234:local-date,local-time`,

	Args: cobra.MinimumNArgs(1),
	RunE: runRPM,
}

func runRPM(cmd *cobra.Command, args []string) error {
	if deviceID == 0 {
		return fmt.Errorf("device ID is required (-d or --device)")
	}

	specs := make([]bacnet.ReadAccessSpec, 0, len(args))
	for _, arg := range args {
		spec, err := parseReadAccessSpec(arg)
		if err != nil {
			return fmt.Errorf("invalid argument %q: %w", arg, err)
		}
		specs = append(specs, spec)
	}

	client, err := createClient()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout*2)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	results, err := client.ReadPropertyMultiple(ctx, deviceID, specs)
	if err != nil {
		return fmt.Errorf("read property multiple: %w", err)
	}

	switch outputFmt {
	case "json":
		return outputRPMJSON(results)
	case "csv":
		for _, res := range results {
			for _, pr := range res.Results {
				fmt.Printf("%s,%s,%s\n", res.ObjectID.String(), pr.PropertyID.String(), formatPropertyResult(pr))
			}
		}
		return nil
	default:
		for _, res := range results {
			fmt.Printf("%s:\n", res.ObjectID.String())
			for _, pr := range res.Results {
				fmt.Printf("  %-24s %s\n", pr.PropertyID.String(), formatPropertyResult(pr))
			}
		}
		return nil
	}
}

// parseReadAccessSpec parses "type:instance:prop[,prop...]".
func parseReadAccessSpec(s string) (bacnet.ReadAccessSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return bacnet.ReadAccessSpec{}, fmt.Errorf("expected format type:instance:property[,property...]")
	}

	objectID, err := parseObjectIdentifier(parts[0] + ":" + parts[1])
	if err != nil {
		return bacnet.ReadAccessSpec{}, err
	}

	spec := bacnet.ReadAccessSpec{ObjectID: objectID}
	for _, name := range strings.Split(parts[2], ",") {
		propID, err := parsePropertyIdentifier(name)
		if err != nil {
			return bacnet.ReadAccessSpec{}, err
		}
		spec.Properties = append(spec.Properties, bacnet.PropertyReference{PropertyID: propID})
	}

	return spec, nil
}

func formatPropertyResult(pr bacnet.PropertyResult) string {
	if pr.Error != nil {
		return fmt.Sprintf("error: %s/%s", pr.Error.Class.String(), pr.Error.Code.String())
	}
	return formatValue(pr.Value)
}

func outputRPMJSON(results []bacnet.ReadAccessResult) error {
	fmt.Println("[")
	for i, res := range results {
		fmt.Printf("  {\"object\": %q, \"properties\": {", res.ObjectID.String())
		for j, pr := range res.Results {
			if j > 0 {
				fmt.Print(", ")
			}
			if pr.Error != nil {
				fmt.Printf("%q: {\"error\": %q}", pr.PropertyID.String(), pr.Error.Code.String())
				continue
			}
			valStr := formatValue(pr.Value)
			switch pr.Value.(type) {
			case nil, bacnet.Null:
				valStr = "null"
			case bacnet.Boolean, bacnet.UnsignedInteger, bacnet.Real, bacnet.Double:
			default:
				valStr = fmt.Sprintf("%q", valStr)
			}
			fmt.Printf("%q: %s", pr.PropertyID.String(), valStr)
		}
		fmt.Print("}}")
		if i < len(results)-1 {
			fmt.Print(",")
		}
		fmt.Println()
	}
	fmt.Println("]")
	return nil
}
