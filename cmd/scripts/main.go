// Command scripts drives the invitations API through the typed client:
// bulk-creating invitations from a definitions file and sending the
// notification email for every invitation that still needs one.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gosimple/slug"

	"wedding-invitations/modules/invitation/client"
	"wedding-invitations/modules/invitation/model"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:7070/api/v1", "base URL of the invitations API")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	c := client.New(*baseURL)
	ctx := context.Background()

	var err error
	switch flag.Arg(0) {
	case "create":
		err = runCreate(ctx, c, flag.Args()[1:])
	case "send-emails":
		err = runSendEmails(ctx, c)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scripts [-base-url URL] <command>

Commands:
  create -file <definitions.json>  create invitations from a JSON file
  send-emails                      send the invitation email for every
                                   unsent invitation with an address
`)
}

func runCreate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	file := fs.String("file", "", "path to a JSON array of invitation definitions")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("create: -file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	var definitions []model.InvitationDefinition
	if err := json.Unmarshal(data, &definitions); err != nil {
		return fmt.Errorf("parse %s: %w", *file, err)
	}

	for _, definition := range definitions {
		if definition.Code == "" {
			definition.Code = slug.Make(definition.AddressedTo)
		}

		result, err := c.CreateInvitation(ctx, definition)
		if err != nil {
			return err
		}
		if !result.IsSuccess() {
			return fmt.Errorf("create %q: service answered %d", definition.Code, result.StatusCode())
		}

		id, _ := result.Value()
		fmt.Printf("ID: %s, AddressedTo: %s, Code: %s\n", id, definition.AddressedTo, definition.Code)
	}

	return nil
}

func runSendEmails(ctx context.Context, c *client.Client) error {
	result, err := c.GetInvitations(ctx)
	if err != nil {
		return err
	}

	invitations, ok := result.Value()
	if !ok {
		return fmt.Errorf("list invitations: service answered %d", result.StatusCode())
	}

	for _, invitation := range invitations {
		if invitation.EmailSent || invitation.EmailAddress == nil {
			continue
		}

		sendResult, err := c.SendEmail(ctx, invitation.ID)
		if err != nil {
			return err
		}
		if !sendResult.IsSuccess() {
			return fmt.Errorf("send email for %q: service answered %d", invitation.ID, sendResult.StatusCode())
		}

		fmt.Printf("Email sent for %s\n", invitation.AddressedTo)
	}

	return nil
}
