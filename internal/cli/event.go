package cli

import (
	"context"
	"fmt"
	"strings"
)

// Static event and gifting details; the web app compiled these into its
// screens the same way.
var eventInfo = struct {
	Title string
	Date  string
	Venue string
}{
	Title: "Angelique and Zaadrick's Baby Shower",
	Date:  "10 January 2026",
	Venue: "The Hamlet Country Lodge",
}

var bankingInfo = struct {
	Bank          string
	AccountNumber string
	BranchCode    string
	AccountType   string
}{
	Bank:          "ABSA",
	AccountNumber: "4088026917",
	BranchCode:    "334107",
	AccountType:   "Cheque",
}

func (a *App) Event(ctx context.Context) error {
	fmt.Fprintln(a.out, eventInfo.Title)
	fmt.Fprintf(a.out, "  Date:  %s\n", eventInfo.Date)
	fmt.Fprintf(a.out, "  Venue: %s\n", eventInfo.Venue)
	fmt.Fprintln(a.out, "Please arrive 15-30 minutes early to find parking and settle in.")
	return nil
}

// Bank prints the account to use for monetary gifts. The payment
// reference is derived from the logged-in user so deposits are
// attributable.
func (a *App) Bank(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	first := s.Name
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	fmt.Fprintln(a.out, "Banking details for gifts:")
	fmt.Fprintf(a.out, "  Bank:           %s\n", bankingInfo.Bank)
	fmt.Fprintf(a.out, "  Account number: %s\n", bankingInfo.AccountNumber)
	fmt.Fprintf(a.out, "  Branch code:    %s\n", bankingInfo.BranchCode)
	fmt.Fprintf(a.out, "  Account type:   %s\n", bankingInfo.AccountType)
	fmt.Fprintf(a.out, "  Reference:      azbs_%s\n", strings.ToLower(first))
	return nil
}
