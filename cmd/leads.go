package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/prospect-cli/internal/leads"
	"github.com/sells-group/prospect-cli/internal/model"
	sfpkg "github.com/sells-group/prospect-cli/pkg/salesforce"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Rank the hottest sales prospects",
	Long: `Scores every eligible institution, ranks by priority, and prints the top
leads. Output formats: table (default), csv, xlsx.

Examples:
  # Top 25 leads as a table
  prospect leads

  # Top 100 as a spreadsheet
  prospect leads --limit 100 --format xlsx --output leads.xlsx

  # Push the ranked leads to Salesforce
  prospect leads --push-sf`,
	RunE: runLeads,
}

func init() {
	f := leadsCmd.Flags()
	f.Int("limit", 0, "number of leads to return (0=use config default)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	f.Bool("refresh", false, "refresh the feed snapshot before ranking")
	f.Bool("push-sf", false, "upsert the ranked leads to Salesforce")

	rootCmd.AddCommand(leadsCmd)
}

func runLeads(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("leads: --format must be table, csv, or xlsx (got %q)", format)
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if format == "xlsx" && outputPath == "" {
		return eris.New("leads: --output is required with --format xlsx")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Leads.DefaultLimit
	}
	refresh, _ := cmd.Flags().GetBool("refresh")

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	insts, err := institutionSet(ctx, s, refresh)
	if err != nil {
		return err
	}

	ranked := leads.Rank(insts, limit, rankOptions())
	zap.L().Info("leads ranked",
		zap.Int("institutions", len(insts)),
		zap.Int("leads", len(ranked)),
	)

	if push, _ := cmd.Flags().GetBool("push-sf"); push {
		sf, err := initSalesforce()
		if err != nil {
			return err
		}
		n, err := sfpkg.PushLeads(ctx, sf, ranked)
		if err != nil {
			return err
		}
		fmt.Printf("Pushed %d leads to Salesforce\n", n)
	}

	switch format {
	case "csv":
		return writeLeadsCSV(ranked, outputPath)
	case "xlsx":
		return writeLeadsXLSX(ranked, outputPath)
	default:
		return printLeadsTable(ranked)
	}
}

func printLeadsTable(ranked []model.HotLead) error {
	p := message.NewPrinter(language.AmericanEnglish)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "RANK\tNAME\tST\tASSETS\tSCORE\tBUCKET\tDEAL VALUE\tTOP PRODUCT")
	for _, l := range ranked {
		top := ""
		if len(l.Recommendations) > 0 {
			top = l.Recommendations[0].ProductName
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.Rank,
			l.Institution.Name,
			l.Institution.State,
			p.Sprintf("$%d", l.Institution.TotalAssets),
			l.PriorityScore,
			l.UrgencyBucket,
			p.Sprintf("$%d", l.EstimatedDealValue),
			top,
		)
	}
	return w.Flush()
}

func leadRows(ranked []model.HotLead) [][]string {
	rows := [][]string{{
		"rank", "id", "name", "type", "city", "state", "total_assets",
		"priority_score", "bucket", "deal_value", "annual_roi_pct",
		"payback_months", "top_product",
	}}
	for _, l := range ranked {
		top := ""
		if len(l.Recommendations) > 0 {
			top = l.Recommendations[0].ProductName
		}
		rows = append(rows, []string{
			strconv.Itoa(l.Rank),
			l.Institution.ID,
			l.Institution.Name,
			string(l.Institution.Type),
			l.Institution.City,
			l.Institution.State,
			strconv.FormatInt(l.Institution.TotalAssets, 10),
			strconv.Itoa(l.PriorityScore),
			string(l.UrgencyBucket),
			strconv.FormatInt(l.EstimatedDealValue, 10),
			strconv.Itoa(l.ROISummary.AnnualROIPct),
			strconv.Itoa(l.ROISummary.PaybackMonths),
			top,
		})
	}
	return rows
}

func writeLeadsCSV(ranked []model.HotLead, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrap(err, "leads: create csv")
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	if err := w.WriteAll(leadRows(ranked)); err != nil {
		return eris.Wrap(err, "leads: write csv")
	}
	return nil
}

func writeLeadsXLSX(ranked []model.HotLead, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Hot Leads")
	if err != nil {
		return eris.Wrap(err, "leads: add sheet")
	}

	for _, row := range leadRows(ranked) {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "leads: save xlsx")
	}
	return nil
}
