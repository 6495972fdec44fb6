package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"loan-fee/domain"
	"loan-fee/repository"
	"loan-fee/service"
)

func feeCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "fee <term> <amount>",
		Short: "Calculate the fee for a loan term and amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, amount, err := parseLoanArgs(args)
			if err != nil {
				return err
			}

			svc, err := opts.offlineService()
			if err != nil {
				return err
			}

			res, err := svc.CalculateFee(term, amount)
			if err != nil {
				return err
			}
			return printFee(cmd.OutOrStdout(), res, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func quoteCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "quote <term> <amount>",
		Short: "Calculate fee and monthly payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term, amount, err := parseLoanArgs(args)
			if err != nil {
				return err
			}

			svc, err := opts.offlineService()
			if err != nil {
				return err
			}

			q, err := svc.CalculateQuote(term, amount)
			if err != nil {
				return err
			}
			return printQuote(cmd.OutOrStdout(), q, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func termsCmd(opts *rootOptions) *cobra.Command {
	var input domain.TermRecommendationInput
	var format string

	c := &cobra.Command{
		Use:   "terms <amount>",
		Short: "Rank the configured terms for an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			input.Amount = amount

			table, log, err := opts.offline()
			if err != nil {
				return err
			}

			svc := service.NewTermRecommendationService(table, log)
			result, err := svc.RecommendTerm(input)
			if err != nil {
				return err
			}
			return printTerms(cmd.OutOrStdout(), result, format)
		},
	}

	c.Flags().IntVar(&input.MinTermMonths, "min-term", 0, "Shortest term to consider (defaults to the table minimum)")
	c.Flags().IntVar(&input.MaxTermMonths, "max-term", 0, "Longest term to consider (defaults to the table maximum)")
	c.Flags().Float64Var(&input.MaxMonthlyPayment, "max-payment", 0, "Upper bound on the monthly payment (0 means none)")
	c.Flags().StringVar(&input.Preference, "preference", domain.PreferenceBalanced, "minimize_fee|minimize_payment|balanced")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func tableCmd(opts *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "table",
		Short: "Summarise the loaded fee table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, _, err := opts.offline()
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), table, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

// offlineService builds a LoanService backed by in-memory storage.
func (o *rootOptions) offlineService() (*service.LoanService, error) {
	table, log, err := o.offline()
	if err != nil {
		return nil, err
	}
	return service.NewLoanService(table, repository.NewQuoteRepositoryMemory(), repository.NewMemoryCache(), log), nil
}

func parseLoanArgs(args []string) (int, float64, error) {
	term, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid term %q: must be a whole number of months", args[0])
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	return term, amount, nil
}
