// Command frontdeskctl is the operator CLI for the front-desk agent:
// encrypted secrets management, usage reporting, and lead lookup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"frontdesk/pkg/config"
	"frontdesk/pkg/leads"
	"frontdesk/pkg/metrics"
	"frontdesk/pkg/persistence"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "secrets":
		err = runSecrets(os.Args[2:])
	case "usage":
		err = runUsage(os.Args[2:])
	case "lead":
		err = runLead(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`frontdeskctl - operator CLI for the front-desk agent

Usage:
  frontdeskctl secrets set NAME=VALUE [NAME=VALUE...]   Store API keys in the encrypted secrets file
  frontdeskctl usage [-prometheus URL] [-by-model]      Show LLM token usage from Prometheus
  frontdeskctl lead [-db PATH] REFERENCE                Look up a captured lead by reference ID
`)
}

// runSecrets implements "secrets set". Existing secrets are preserved and
// merged with the new values; the password is read from the terminal.
func runSecrets(args []string) error {
	if len(args) < 2 || args[0] != "set" {
		return fmt.Errorf("usage: frontdeskctl secrets set NAME=VALUE [NAME=VALUE...]")
	}

	updates := make(map[string]string)
	for _, pair := range args[1:] {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid secret %q, expected NAME=VALUE", pair)
		}
		updates[name] = value
	}

	password, err := readPassword("Secrets password: ")
	if err != nil {
		return err
	}

	secrets := make(map[string]string)
	if config.SecretsFileExists(".") {
		existing, err := config.DecryptSecretsFile(".", password)
		if err != nil {
			return fmt.Errorf("failed to decrypt existing secrets: %w", err)
		}
		secrets = existing
	} else {
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if confirm != password {
			return fmt.Errorf("passwords do not match")
		}
	}

	for name, value := range updates {
		secrets[name] = value
	}

	if err := config.EncryptSecretsFile(".", password, secrets); err != nil {
		return fmt.Errorf("failed to write secrets file: %w", err)
	}

	fmt.Printf("Saved %d secret(s) (%d total)\n", len(updates), len(secrets))
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

// runUsage implements "usage": token totals from a Prometheus server scraping
// the agent's /metrics endpoint.
func runUsage(args []string) error {
	flagSet := flag.NewFlagSet("usage", flag.ExitOnError)
	prometheusURL := flagSet.String("prometheus", "http://localhost:9090", "Prometheus server URL")
	byModel := flagSet.Bool("by-model", false, "Break usage down by model")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	service, err := metrics.NewQueryService(*prometheusURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if *byModel {
		usage, err := service.GetUsageByModel(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "MODEL\tPROMPT\tCOMPLETION\tTOTAL\tREQUESTS")
		for _, m := range usage {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", m.Model, m.PromptTokens, m.CompletionTokens, m.TotalTokens, m.Requests)
		}
		return nil
	}

	usage, err := service.GetUsage(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Prompt tokens:\t%d\n", usage.PromptTokens)
	fmt.Fprintf(w, "Completion tokens:\t%d\n", usage.CompletionTokens)
	fmt.Fprintf(w, "Total tokens:\t%d\n", usage.TotalTokens)
	fmt.Fprintf(w, "Requests:\t%d\n", usage.Requests)
	fmt.Fprintf(w, "Errors:\t%d\n", usage.Errors)
	return nil
}

// runLead implements "lead": look up a captured lead by its reference ID.
func runLead(args []string) error {
	flagSet := flag.NewFlagSet("lead", flag.ExitOnError)
	dbPath := flagSet.String("db", "frontdesk.db", "Path to the agent database")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("usage: frontdeskctl lead [-db PATH] REFERENCE")
	}
	reference := strings.ToUpper(strings.TrimSpace(flagSet.Arg(0)))

	db, err := persistence.InitializeDatabase(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := leads.NewService(persistence.NewDatabaseOperations(db))
	lead, err := service.Lookup(reference)
	if err != nil {
		return fmt.Errorf("lead %s: %w", reference, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Reference:\t%s\n", lead.ReferenceID)
	fmt.Fprintf(w, "Name:\t%s\n", lead.Name)
	fmt.Fprintf(w, "Email:\t%s\n", lead.Email)
	fmt.Fprintf(w, "Inquiry type:\t%s\n", lead.InquiryType)
	fmt.Fprintf(w, "Duplicate:\t%v\n", lead.IsDuplicate)
	fmt.Fprintf(w, "Captured:\t%s\n", lead.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Summary:\t%s\n", lead.ConversationSummary)
	return nil
}
