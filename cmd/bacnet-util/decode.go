package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgeo/protocols/bacnet"
)

var decodeFile string

var decodeCmd = &cobra.Command{
	Use:   "decode [hex]",
	Short: "Decode a captured BACnet/IP frame",
	Long: `Decode parses a hex-encoded BACnet/IP frame and prints its link,
network and application layers.

The frame can be given as an argument, read from a file, or piped on stdin.
Whitespace and colons in the hex input are ignored.

Examples:
  # Decode a Who-Is broadcast
  bacnet-util decode 810b000c0120ffff00ff1008

  # Decode from a capture file
  bacnet-util decode -f frame.hex

  # Decode from stdin
  echo 810a001101040005010c0c020134e71955 | bacnet-util decode`,

	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeFile, "file", "f", "", "File containing the hex-encoded frame")
}

func runDecode(cmd *cobra.Command, args []string) error {
	var input string
	switch {
	case len(args) == 1:
		input = args[0]
	case decodeFile != "":
		data, err := os.ReadFile(decodeFile)
		if err != nil {
			return fmt.Errorf("read frame file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = string(data)
	}

	cleaner := strings.NewReplacer(" ", "", "\n", "", "\r", "", "\t", "", ":", "")
	frame, err := hex.DecodeString(cleaner.Replace(input))
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}
	if len(frame) == 0 {
		return fmt.Errorf("empty frame")
	}

	link, err := bacnet.DecodeDataLink(bacnet.NewReader(frame))
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	printDataLink(link, len(frame))
	return nil
}

func printDataLink(link *bacnet.DataLink, size int) {
	fmt.Printf("BVLL:    %s (%d bytes)\n", link.Function.String(), size)

	switch link.Function {
	case bacnet.BVLCResult:
		fmt.Printf("Result:  0x%04x\n", link.Result)
		return
	case bacnet.BVLCRegisterForeignDevice:
		fmt.Printf("TTL:     %d seconds\n", link.TTL)
		return
	case bacnet.BVLCForwardedNPDU:
		fmt.Printf("Origin:  %d.%d.%d.%d:%d\n",
			link.Origin[0], link.Origin[1], link.Origin[2], link.Origin[3],
			int(link.Origin[4])<<8|int(link.Origin[5]))
	}

	if link.NPDU == nil {
		return
	}
	printNPDU(link.NPDU)
}

func printNPDU(npdu *bacnet.NetworkPDU) {
	if npdu.Dst != nil {
		fmt.Printf("DNET:    %d (hop count %d)\n", npdu.Dst.Net, npdu.HopCount)
	}
	if npdu.Src != nil {
		fmt.Printf("SNET:    %d (address %x)\n", npdu.Src.Net, npdu.Src.Addr)
	}
	if npdu.ExpectingReply {
		fmt.Println("Control: expecting reply")
	}

	if npdu.MessageType != nil {
		fmt.Printf("Network: %s (%d payload bytes)\n", npdu.MessageType.String(), len(npdu.Payload))
		return
	}
	if npdu.APDU != nil {
		printAPDU(npdu.APDU)
	}
}

func printAPDU(apdu bacnet.ApplicationPDU) {
	switch p := apdu.(type) {
	case *bacnet.ConfirmedRequest:
		fmt.Printf("APDU:    ConfirmedRequest (invoke %d)\n", p.InvokeID)
		printService(p.Service)
	case *bacnet.UnconfirmedRequest:
		fmt.Println("APDU:    UnconfirmedRequest")
		printService(p.Service)
	case *bacnet.SimpleAck:
		fmt.Printf("APDU:    SimpleAck (invoke %d, service %s)\n", p.InvokeID, p.Service.String())
	case *bacnet.ComplexAck:
		fmt.Printf("APDU:    ComplexAck (invoke %d)\n", p.InvokeID)
		printService(p.Ack)
	case *bacnet.ErrorPDU:
		fmt.Printf("APDU:    Error (invoke %d, service %s)\n", p.InvokeID, p.Service.String())
		fmt.Printf("Error:   class %d, code %d\n", p.Class, p.Code)
	case *bacnet.Reject:
		fmt.Printf("APDU:    Reject (invoke %d, reason %d)\n", p.InvokeID, p.Reason)
	case *bacnet.Abort:
		fmt.Printf("APDU:    Abort (invoke %d, reason %d, server %t)\n", p.InvokeID, p.Reason, p.Server)
	default:
		fmt.Println("APDU:    (unrecognized)")
	}
}

func printService(service interface{}) {
	switch s := service.(type) {
	case *bacnet.WhoIs:
		if s.Low != nil && s.High != nil {
			fmt.Printf("Service: Who-Is (range %d-%d)\n", *s.Low, *s.High)
		} else {
			fmt.Println("Service: Who-Is")
		}
	case *bacnet.IAm:
		fmt.Printf("Service: I-Am from %s (max APDU %d, vendor %d, %s)\n",
			s.DeviceID.String(), s.MaxAPDU, s.VendorID, s.Segmentation.String())
	case *bacnet.TimeSynchronization:
		name := "TimeSynchronization"
		if s.UTC {
			name = "UTCTimeSynchronization"
		}
		fmt.Printf("Service: %s %s %s\n", name, s.Date.String(), s.Time.String())
	case *bacnet.ReadPropertyRequest:
		fmt.Printf("Service: ReadProperty %s.%s%s\n",
			s.ObjectID.String(), s.PropertyID.String(), formatArrayIndex(s.ArrayIndex))
	case *bacnet.ReadPropertyAck:
		fmt.Printf("Service: ReadProperty ack %s.%s%s = %s\n",
			s.ObjectID.String(), s.PropertyID.String(), formatArrayIndex(s.ArrayIndex), formatValue(s.Value))
	case *bacnet.WritePropertyRequest:
		fmt.Printf("Service: WriteProperty %s.%s%s = %s\n",
			s.ObjectID.String(), s.PropertyID.String(), formatArrayIndex(s.ArrayIndex), formatValue(s.Value))
		if s.Priority != nil {
			fmt.Printf("Priority: %d\n", *s.Priority)
		}
	case *bacnet.ReadPropertyMultipleRequest:
		fmt.Printf("Service: ReadPropertyMultiple (%d objects)\n", len(s.Specs))
		for _, spec := range s.Specs {
			for _, prop := range spec.Properties {
				fmt.Printf("  %s.%s%s\n", spec.ObjectID.String(), prop.PropertyID.String(), formatArrayIndex(prop.ArrayIndex))
			}
		}
	case *bacnet.ReadPropertyMultipleAck:
		fmt.Printf("Service: ReadPropertyMultiple ack (%d objects)\n", len(s.Objects))
		for _, obj := range s.Objects {
			for _, res := range obj.Results {
				if res.Error != nil {
					fmt.Printf("  %s.%s%s: error class %d, code %d\n",
						obj.ObjectID.String(), res.PropertyID.String(), formatArrayIndex(res.ArrayIndex),
						res.Error.Class, res.Error.Code)
					continue
				}
				fmt.Printf("  %s.%s%s = %s\n",
					obj.ObjectID.String(), res.PropertyID.String(), formatArrayIndex(res.ArrayIndex),
					formatValue(res.Value))
			}
		}
	default:
		fmt.Println("Service: (unrecognized)")
	}
}

func formatArrayIndex(index *uint32) string {
	if index == nil {
		return ""
	}
	return fmt.Sprintf("[%d]", *index)
}
