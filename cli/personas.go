// ABOUTME: Persona listing CLI command
// ABOUTME: Fetches and prints the current persona snapshot per mode
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/models"
)

// PersonasCommand fetches and prints available personas for both modes.
func PersonasCommand(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("personas", flag.ExitOnError)
	_ = fs.Parse(args)

	set, err := c.ListPersonas(context.Background())
	if err != nil {
		return err
	}

	if set.IsEmpty() {
		fmt.Println("No personas available. The backend may still be warming up.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MODE\tPERSONA")
	_, _ = fmt.Fprintln(w, "----\t-------")
	for _, persona := range set.Normal {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", models.ModeNormal, persona)
	}
	for _, persona := range set.Impersonation {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", models.ModeImpersonation, persona)
	}
	_ = w.Flush()
	return nil
}
