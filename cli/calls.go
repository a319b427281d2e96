// ABOUTME: Call history CLI commands
// ABOUTME: Lists placed calls newest first and shows single-call details
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

// CallsCommand lists placed calls, newest first, optionally filtered by a
// case-insensitive substring match on name or phone.
func CallsCommand(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("calls", flag.ExitOnError)
	query := fs.String("query", "", "Filter by name or phone substring")
	_ = fs.Parse(args)

	calls, err := c.ListCalls(context.Background())
	if err != nil {
		return err
	}

	filtered := models.FilterCalls(calls, *query)
	if len(filtered) == 0 {
		if *query != "" {
			fmt.Printf("No calls match %q.\n", *query)
		} else {
			fmt.Println("No calls placed yet.")
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPHONE\tMODE\tPERSONA\tPLACED\tCALL SID")
	_, _ = fmt.Fprintln(w, "----\t-----\t----\t-------\t------\t--------")
	for _, call := range filtered {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			call.Name, call.Phone, call.Mode, call.Persona,
			models.FormatTimestampIST(call.TimestampMillis), call.CallSid)
	}
	_ = w.Flush()
	return nil
}

// DetailCommand prints the full record for one call SID.
func DetailCommand(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("detail", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("detail requires a call SID argument")
	}
	sid := fs.Arg(0)

	record, err := c.GetCallDetails(context.Background(), sid)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Call SID:\t%s\n", record.CallSid)
	_, _ = fmt.Fprintf(w, "Name:\t%s\n", record.Name)
	_, _ = fmt.Fprintf(w, "Phone:\t%s\n", record.Phone)
	_, _ = fmt.Fprintf(w, "Mode:\t%s\n", record.Mode)
	_, _ = fmt.Fprintf(w, "Persona:\t%s\n", record.Persona)
	if record.VoiceID != "" {
		_, _ = fmt.Fprintf(w, "Voice ID:\t%s\n", record.VoiceID)
	}
	_, _ = fmt.Fprintf(w, "Placed:\t%s\n", models.FormatTimestampIST(record.TimestampMillis))
	_ = w.Flush()
	return nil
}
