// ABOUTME: Call placement CLI command
// ABOUTME: Validates input locally, requires consent, and prints the audit payload
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/models"
)

// CallCommand places a simulated vishing call. The --yes flag is the consent
// acknowledgement; without it no request is made.
func CallCommand(c *client.Client, args []string) error {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	phone := fs.String("ph", "", "Target phone in E.164 form (required)")
	name := fs.String("name", "", "Target name (required)")
	persona := fs.String("persona", "", "Persona to use (required, see 'personas')")
	mode := fs.String("mode", string(models.ModeNormal), "Call mode: normal or impersonation")
	voiceID := fs.String("voice-id", models.DefaultVoiceID, "Voice ID for normal-mode calls")
	consent := fs.Bool("yes", false, "Acknowledge that the target has consented to the simulation")
	_ = fs.Parse(args)

	if *mode != string(models.ModeNormal) && *mode != string(models.ModeImpersonation) {
		return fmt.Errorf("unknown mode %q (expected normal or impersonation)", *mode)
	}
	if !*consent {
		return errors.New(models.MsgConsentRequired)
	}

	req := models.CallRequest{
		Phone:   *phone,
		Name:    *name,
		Persona: *persona,
		Mode:    models.Mode(*mode),
		VoiceID: *voiceID,
	}

	// Phone and name are checked before any request goes out
	if err := models.ValidatePhone(strings.TrimSpace(req.Phone)); err != nil {
		return err
	}
	if err := models.ValidateName(req.Name); err != nil {
		return err
	}

	// Persona membership is checked against a fresh snapshot
	set, err := c.ListPersonas(context.Background())
	if err != nil {
		return err
	}
	if err := req.Validate(set); err != nil {
		return err
	}

	result, err := c.PlaceCall(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Println("Call requested. The target should receive the call shortly.")
	printRequestDetails(req)

	if sid, ok := result["callSid"].(string); ok && sid != "" {
		fmt.Printf("\nCall SID: %s\n", sid)
	}
	return nil
}

// printRequestDetails shows the exact payload that was sent, for audit
// visibility. Keys the backend never saw (like a dropped voice_id) are
// absent here too.
func printRequestDetails(req models.CallRequest) {
	data, err := json.MarshalIndent(req.Payload(), "", "  ")
	if err != nil {
		return
	}
	fmt.Println("\nRequest details:")
	fmt.Println(string(data))
}
