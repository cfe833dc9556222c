package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/prospect-cli/internal/leads"
	"github.com/sells-group/prospect-cli/internal/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Full analysis of a single institution",
	Long: `Runs the complete analysis for one institution: peer comparison,
opportunity scoring, product recommendations, ROI projection, pricing tier,
and competitive landscape.

Examples:
  prospect analyze --id cu-101
  prospect analyze --id bank-5501 --format json`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("id", "", "institution id (required)")
	f.String("format", "table", "output format: table or json")
	f.Bool("refresh", false, "refresh the feed snapshot first")
	_ = analyzeCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("analyze: --format must be table or json (got %q)", format)
	}
	id, _ := cmd.Flags().GetString("id")
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

	inst := findInstitution(insts, id)
	if inst == nil {
		return eris.Errorf("analyze: institution %q not found (run prospect fetch?)", id)
	}

	analysis := leads.Analyze(inst, insts, rankOptions())

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(analysis), "analyze: encode json")
	}
	return printAnalysis(analysis)
}

func findInstitution(insts []model.Institution, id string) *model.Institution {
	for i := range insts {
		if insts[i].ID == id {
			return &insts[i]
		}
	}
	return nil
}

func printAnalysis(a *model.Analysis) error {
	p := message.NewPrinter(language.AmericanEnglish)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	inst := a.Institution
	fmt.Fprintf(w, "%s (%s)\t%s, %s\n", inst.Name, inst.ID, inst.City, inst.State)
	fmt.Fprintf(w, "Assets\t%s\n", p.Sprintf("$%d", inst.TotalAssets))
	if inst.Members > 0 {
		fmt.Fprintf(w, "Members\t%s\n", p.Sprintf("%d", inst.Members))
	}
	fmt.Fprintf(w, "ROA\t%.2f%%\n", inst.ROA)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Opportunity\t%d (%s)\n", a.Opportunity.Score, a.Opportunity.Tier)
	fmt.Fprintf(w, "Peer percentile\t%d (of %d peers)\n", a.PeerComparison.Percentile, a.PeerComparison.PeerCount)
	fmt.Fprintf(w, "Signals\tgrowth %d / tech %d / buying %d\n", a.Growth.Score, a.Tech.Score, a.Buying.Score)
	fmt.Fprintf(w, "Approach\t%s\n", a.Opportunity.Approach)
	fmt.Fprintf(w, "Deal size\t%s\n", a.Opportunity.DealSizeRange)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PRODUCT\tFIT\tURGENCY")
	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "%s\t%d\t%s\n", r.ProductName, r.FitScore, r.Urgency)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Pricing\t%s, %s/yr\n", a.Pricing.Tier, p.Sprintf("$%d", a.Pricing.AnnualPrice))
	fmt.Fprintf(w, "ROI\t%d%% annual, payback %d months\n", a.ROI.AnnualROIPct, a.ROI.PaybackMonths)
	fmt.Fprintf(w, "Annual benefit\t%s\n", p.Sprintf("$%d", a.ROI.TotalAnnualBenefit))
	fmt.Fprintln(w)

	var incumbents []string
	for _, pr := range a.Competitive.Presences {
		incumbents = append(incumbents, pr.Profile.Name)
	}
	if len(incumbents) == 0 {
		fmt.Fprintf(w, "Competitive\tgreenfield\n")
	} else {
		fmt.Fprintf(w, "Competitive\t%s\n", strings.Join(incumbents, ", "))
	}
	fmt.Fprintf(w, "Win probability\t%d%%\n", a.Competitive.WinProbabilityPct)
	fmt.Fprintf(w, "Switching cost\t%s (difficulty %d/10)\n", a.Competitive.SwitchingCost, a.Competitive.DisplacementDifficulty)

	return w.Flush()
}
