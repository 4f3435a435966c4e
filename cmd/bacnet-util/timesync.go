package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	timesyncUTC       bool
	timesyncBroadcast bool
	timesyncAt        string
	timesyncVerify    bool
)

var timesyncCmd = &cobra.Command{
	Use:   "timesync",
	Short: "Synchronize a device clock",
	Long: `Timesync sends a TimeSynchronization request carrying the local
system clock (or an explicit time) to a device or to the local broadcast.

Examples:
  # Sync a device to the local system clock
  bacnet-util timesync -d 1234

  # Sync using UTC time synchronization
  bacnet-util timesync -d 1234 --utc

  # Broadcast the time to all devices on the local network
  bacnet-util timesync --broadcast

  # Send an explicit time and read it back
  bacnet-util timesync -d 1234 --at 2026-08-30T12:00:00Z --verify`,

	RunE: runTimesync,
}

func init() {
	timesyncCmd.Flags().BoolVar(&timesyncUTC, "utc", false, "Send UTCTimeSynchronization instead of local time")
	timesyncCmd.Flags().BoolVar(&timesyncBroadcast, "broadcast", false, "Broadcast to the local network instead of a single device")
	timesyncCmd.Flags().StringVar(&timesyncAt, "at", "", "Explicit time to send (RFC 3339, default: now)")
	timesyncCmd.Flags().BoolVar(&timesyncVerify, "verify", false, "Read the device clock back after syncing")
}

func runTimesync(cmd *cobra.Command, args []string) error {
	if !timesyncBroadcast && deviceID == 0 {
		return fmt.Errorf("device ID is required (-d or --device), or use --broadcast")
	}

	when := time.Now()
	if timesyncAt != "" {
		parsed, err := time.Parse(time.RFC3339, timesyncAt)
		if err != nil {
			return fmt.Errorf("invalid --at time: %w", err)
		}
		when = parsed
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

	if timesyncBroadcast {
		if err := client.TimeSyncBroadcast(ctx, when, timesyncUTC); err != nil {
			return fmt.Errorf("time sync broadcast: %w", err)
		}
		fmt.Printf("Broadcast time synchronization: %s\n", when.Format(time.RFC3339))
		return nil
	}

	if err := client.TimeSync(ctx, deviceID, when, timesyncUTC); err != nil {
		return fmt.Errorf("time sync: %w", err)
	}
	fmt.Printf("Sent time synchronization to device %d: %s\n", deviceID, when.Format(time.RFC3339))

	if timesyncVerify {
		deviceTime, err := client.ReadDateTime(ctx, deviceID)
		if err != nil {
			return fmt.Errorf("read device clock: %w", err)
		}
		fmt.Printf("Device clock now reads: %s\n", deviceTime.Format(time.RFC3339))
	}

	return nil
}
