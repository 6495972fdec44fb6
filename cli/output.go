package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"loan-fee/domain"
)

func printFee(w io.Writer, res domain.FeeResult, format string) error {
	switch format {
	case "json":
		return encodeJSON(w, res)
	case "pretty", "":
		fmt.Fprintf(w, "Term:   %d months\n", res.Term)
		fmt.Fprintf(w, "Amount: %.2f\n", res.Amount)
		fmt.Fprintf(w, "Fee:    %.2f%s\n", res.Fee, interpolatedNote(res.Interpolated))
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printQuote(w io.Writer, q domain.Quote, format string) error {
	switch format {
	case "json":
		return encodeJSON(w, q)
	case "pretty", "":
		fmt.Fprintf(w, "Quote:   %s\n", q.ID)
		fmt.Fprintf(w, "Term:    %d months\n", q.Term)
		fmt.Fprintf(w, "Amount:  %.2f\n", q.Amount)
		fmt.Fprintf(w, "Fee:     %.2f%s\n", q.Fee, interpolatedNote(q.Interpolated))
		fmt.Fprintf(w, "Payment: %.2f / month\n", q.Payment)
		fmt.Fprintf(w, "Created: %s\n", q.CreatedAt.Format(time.RFC3339))
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printTerms(w io.Writer, result domain.TermRecommendationResult, format string) error {
	switch format {
	case "json":
		return encodeJSON(w, result)
	case "pretty", "":
		fmt.Fprintf(w, "Recommended term: %d months\n\n", result.RecommendedTerm)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TERM\tFEE\tPAYMENT\tTOTAL\tSCORE")
		for _, r := range result.Recommendations {
			fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n", r.TermMonths, r.Fee, r.MonthlyPayment, r.TotalRepayable, r.Score)
		}
		return tw.Flush()
	default:
		return unsupportedFormat(format)
	}
}

func printTable(w io.Writer, table *domain.FeeTable, format string) error {
	ranges := table.Ranges()

	switch format {
	case "json":
		return encodeJSON(w, ranges)
	case "pretty", "":
		fmt.Fprintf(w, "Terms: %d to %d months\n\n", table.MinTerm(), table.MaxTerm())
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TERM\tMIN AMOUNT\tMAX AMOUNT\tBANDS")
		for _, r := range ranges {
			fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%d\n", r.Term, r.MinAmount, r.MaxAmount, r.Amounts)
		}
		return tw.Flush()
	default:
		return unsupportedFormat(format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func interpolatedNote(interpolated bool) string {
	if interpolated {
		return " (interpolated)"
	}
	return ""
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
}
