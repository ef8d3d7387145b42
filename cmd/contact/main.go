// Command contact sends one contact message to the API from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/folio/backend/internal/contactclient"
	"github.com/folio/backend/internal/contract"
)

func main() {
	url := flag.String("url", envOr("CONTACT_API_URL", "http://localhost:8080"), "API base URL")
	name := flag.String("name", "", "your name")
	email := flag.String("email", "", "your email address")
	message := flag.String("message", "", "message text")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, contactclient.New(*url), contract.SubmissionInput{
		Name:    *name,
		Email:   *email,
		Message: *message,
	}))
}

func run(ctx context.Context, client *contactclient.Client, in contract.SubmissionInput) int {
	form := contactclient.NewForm(client)
	form.Set(in)

	msg, err := form.Submit(ctx)
	if contract.IsValidationError(err) {
		fe := form.FieldErrors()
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f, fe[f])
		}
		return 2
	}

	if n := form.Notification(); n != nil {
		out := os.Stdout
		if n.Destructive {
			out = os.Stderr
		}
		fmt.Fprintf(out, "%s %s\n", n.Title, n.Description)
	}
	if err != nil {
		return 1
	}
	fmt.Printf("id=%s created_at=%s\n", msg.ID, msg.CreatedAt.Format(time.RFC3339))
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
