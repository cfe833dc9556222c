package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh institution data from the public regulatory feeds",
	Long: `Fetches the credit-union and bank feeds in parallel, stores the merged
snapshot locally, and prints counts. Subsequent leads/analyze runs use the
snapshot until the next fetch.`,
	RunE: runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.String("output", "", "also write the merged snapshot as JSON to this path")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	insts, err := feedClient().FetchAll(ctx)
	if err != nil {
		if len(insts) == 0 {
			return err
		}
		zap.L().Warn("partial feed refresh", zap.Error(err))
	}

	if err := s.SaveInstitutions(ctx, insts); err != nil {
		return err
	}

	var cus, banks int
	for _, inst := range insts {
		if inst.Type == model.CreditUnion {
			cus++
		} else {
			banks++
		}
	}
	fmt.Printf("Fetched %d institutions (%d credit unions, %d banks)\n", len(insts), cus, banks)

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		data, err := json.MarshalIndent(insts, "", "  ")
		if err != nil {
			return eris.Wrap(err, "fetch: marshal snapshot")
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return eris.Wrap(err, "fetch: write snapshot")
		}
		fmt.Printf("Snapshot written to %s\n", path)
	}
	return nil
}
