package main

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/analyzer"
	"github.com/sells-group/prospect-cli/internal/fetcher"
	"github.com/sells-group/prospect-cli/internal/leads"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
	sfpkg "github.com/sells-group/prospect-cli/pkg/salesforce"
)

func feedClient() *fetcher.Client {
	return fetcher.New(fetcher.Options{
		CreditUnionURL: cfg.Feeds.CreditUnionURL,
		BankURL:        cfg.Feeds.BankURL,
		Timeout:        time.Duration(cfg.Feeds.TimeoutSecs) * time.Second,
		MaxRetries:     cfg.Feeds.MaxRetries,
		RatePerSec:     cfg.Feeds.RatePerSec,
	})
}

func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	s, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// institutionSet returns the merged institution universe: the local snapshot
// (refreshed from the feeds when requested or empty) with CRM overlays
// applied, sorted by assets descending.
func institutionSet(ctx context.Context, s store.Store, refresh bool) ([]model.Institution, error) {
	insts, err := s.LoadInstitutions(ctx)
	if err != nil {
		return nil, err
	}

	if refresh || len(insts) == 0 {
		fetched, err := feedClient().FetchAll(ctx)
		if err != nil && len(fetched) == 0 {
			if len(insts) > 0 {
				zap.L().Warn("using stale snapshot, feed refresh failed", zap.Error(err))
			} else {
				return nil, err
			}
		} else {
			if err != nil {
				zap.L().Warn("partial feed refresh", zap.Error(err))
			}
			if saveErr := s.SaveInstitutions(ctx, fetched); saveErr != nil {
				return nil, saveErr
			}
			insts = fetched
		}
	}

	overlays, err := s.LoadOverlays(ctx)
	if err != nil {
		return nil, err
	}
	insts = store.Merge(insts, overlays)

	sort.SliceStable(insts, func(i, j int) bool {
		return insts[i].TotalAssets > insts[j].TotalAssets
	})
	return insts, nil
}

func rankOptions() leads.Options {
	return leads.Options{
		Assumptions: analyzer.Assumptions{
			BudgetSeason: cfg.Leads.BudgetSeason,
		},
	}
}

func initAnthropic() (anthropic.Client, error) {
	if err := cfg.Validate("chat"); err != nil {
		return nil, err
	}
	return anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model), nil
}

func initSalesforce() (sfpkg.Client, error) {
	if err := cfg.Validate("salesforce"); err != nil {
		return nil, err
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}
