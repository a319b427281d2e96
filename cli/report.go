// ABOUTME: Post-call report CLI command
// ABOUTME: Fetches a report by call SID and renders its markdown in the terminal
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/harperreed/vishnet/client"
)

// ReportCommand fetches and renders the report for one call SID. A report
// the backend has not generated yet prints a pending notice instead.
func ReportCommand(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	plain := fs.Bool("plain", false, "Print raw markdown without terminal styling")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("report requires a call SID argument")
	}
	sid := fs.Arg(0)

	report, err := c.GetReport(context.Background(), sid)
	if err != nil {
		return err
	}

	if report.Pending() {
		fmt.Printf("Report for call %s is not yet available. The call may still be processing; try again in a minute.\n", sid)
		return nil
	}

	fmt.Printf("Report for %s (%s)\n\n", report.Name, report.Phone)
	if *plain {
		fmt.Println(report.Report)
	} else {
		fmt.Println(renderMarkdown(report.Report))
	}

	if report.Transcript != "" {
		fmt.Println("--- Transcript ---")
		fmt.Println(report.Transcript)
	}
	return nil
}

// renderMarkdown styles markdown for the terminal, falling back to the raw
// text if the renderer fails.
func renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
