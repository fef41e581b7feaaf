package cmd

import (
	"errors"
	"fmt"

	"github.com/Iron-Ham/unlockcalc/internal/unlock"
	"github.com/spf13/cobra"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Print the unlock code for a device",
	Long: `Derive the unlock code for a MAC address and serial number without a host.

Inputs are normalized the same way the plugin UI normalizes them: colons are
removed, surrounding whitespace is trimmed and letters are upper-cased.

Examples:
  unlockcalc derive --mac AA:BB:CC:DD:EE:FF --serial SN12345
  unlockcalc derive -m aabbccddeeff -s sn12345`,
	Args: cobra.NoArgs,
	RunE: runDerive,
}

var (
	deriveMAC    string
	deriveSerial string
)

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVarP(&deriveMAC, "mac", "m", "", "device MAC address")
	deriveCmd.Flags().StringVarP(&deriveSerial, "serial", "s", "", "device serial number")
}

func runDerive(cmd *cobra.Command, args []string) error {
	mac := unlock.NormalizeMAC(deriveMAC)
	serial := unlock.NormalizeSerial(deriveSerial)
	if mac == "" || serial == "" {
		return errors.New("both --mac and --serial are required")
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), unlock.Derive(mac, serial))
	return err
}
