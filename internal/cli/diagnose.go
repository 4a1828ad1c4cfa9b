package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"siliconstats/internal/logger"
	"siliconstats/internal/smc"
)

func init() {
	rootCmd.AddCommand(diagnoseCmd)
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "List every known SMC temperature key that responds",
	Args:  cobra.NoArgs,
	RunE:  runDiagnose,
}

var errSMCUnavailable = errors.New("SMC unavailable: requires macOS with cgo and permission to open AppleSMC")

func runDiagnose(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.Config{Level: "warn"}); err != nil {
		return err
	}
	defer logger.Close()

	client := smc.NewClient(smc.NewDriver())
	if !client.Open() {
		return errSMCUnavailable
	}
	defer client.Close()

	return writeProbeTable(cmd.OutOrStdout(), client.ProbeKnown())
}

func writeProbeTable(out io.Writer, probes []smc.Probe) error {
	if len(probes) == 0 {
		fmt.Fprintln(out, "No known temperature keys responded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLABEL\tTYPE\tSIZE\tRAW\tVALUE")
	for _, p := range probes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			p.Key,
			p.Label,
			p.Reading.Type,
			p.Reading.Size,
			smc.Hex(p.Reading),
			smc.Describe(p.Reading),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d keys responded.\n", len(probes))
	return nil
}
