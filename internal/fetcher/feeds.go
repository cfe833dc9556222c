package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/model"
)

// ncuaRecord mirrors the credit-union feed schema. Dollar fields arrive in
// whole dollars.
type ncuaRecord struct {
	CharterNumber int     `json:"CU_Number"`
	Name          string  `json:"CU_Name"`
	City          string  `json:"City"`
	State         string  `json:"State"`
	TotalAssets   int64   `json:"Total_Assets"`
	Members       int64   `json:"Total_Members"`
	Shares        int64   `json:"Total_Shares"`
	ROA           float64 `json:"Return_On_Assets"`
	Branches      int     `json:"Branch_Count"`
}

// fdicEnvelope mirrors the bank feed's response wrapper.
type fdicEnvelope struct {
	Data []struct {
		Data fdicRecord `json:"data"`
	} `json:"data"`
}

// fdicRecord mirrors the bank feed schema. ASSET and DEP arrive in
// thousands of dollars and are scaled on decode.
type fdicRecord struct {
	Cert     int     `json:"CERT"`
	Name     string  `json:"NAME"`
	City     string  `json:"CITY"`
	State    string  `json:"STALP"`
	Assets   int64   `json:"ASSET"`
	Deposits int64   `json:"DEP"`
	ROA      float64 `json:"ROA"`
	Offices  int     `json:"OFFICES"`
}

// FetchCreditUnions retrieves the credit-union feed.
func (c *Client) FetchCreditUnions(ctx context.Context) ([]model.Institution, error) {
	body, err := c.get(ctx, c.opts.CreditUnionURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: credit union feed")
	}

	var records []ncuaRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, eris.Wrap(err, "fetcher: decode credit union feed")
	}

	insts := make([]model.Institution, 0, len(records))
	for _, r := range records {
		insts = append(insts, model.Institution{
			ID:          fmt.Sprintf("cu-%d", r.CharterNumber),
			Name:        r.Name,
			Type:        model.CreditUnion,
			City:        r.City,
			State:       r.State,
			TotalAssets: r.TotalAssets,
			Members:     r.Members,
			Deposits:    r.Shares,
			ROA:         r.ROA,
			Branches:    r.Branches,
		})
	}

	zap.L().Info("fetcher: credit union feed loaded", zap.Int("count", len(insts)))
	return insts, nil
}

// FetchBanks retrieves the community-bank feed.
func (c *Client) FetchBanks(ctx context.Context) ([]model.Institution, error) {
	body, err := c.get(ctx, c.opts.BankURL)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: bank feed")
	}

	var env fdicEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, eris.Wrap(err, "fetcher: decode bank feed")
	}

	insts := make([]model.Institution, 0, len(env.Data))
	for _, item := range env.Data {
		r := item.Data
		insts = append(insts, model.Institution{
			ID:          fmt.Sprintf("bank-%d", r.Cert),
			Name:        r.Name,
			Type:        model.CommunityBank,
			City:        r.City,
			State:       r.State,
			TotalAssets: r.Assets * 1_000,
			Deposits:    r.Deposits * 1_000,
			ROA:         r.ROA,
			Branches:    r.Offices,
		})
	}

	zap.L().Info("fetcher: bank feed loaded", zap.Int("count", len(insts)))
	return insts, nil
}

// FetchAll retrieves both feeds in parallel and returns the merged list
// sorted by assets descending. If one feed fails, records from the other
// are still returned alongside the error so the caller can decide whether
// a partial refresh is acceptable.
func (c *Client) FetchAll(ctx context.Context) ([]model.Institution, error) {
	var cus, banks []model.Institution

	var g errgroup.Group
	g.Go(func() error {
		var err error
		cus, err = c.FetchCreditUnions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		banks, err = c.FetchBanks(ctx)
		return err
	})
	err := g.Wait()

	merged := append(cus, banks...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TotalAssets > merged[j].TotalAssets
	})
	if err != nil {
		return merged, eris.Wrap(err, "fetcher: fetch all")
	}
	return merged, nil
}
