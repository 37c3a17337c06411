package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Mininormi/mininormi1210/models"
	"github.com/Mininormi/mininormi1210/repository"
	"github.com/Mininormi/mininormi1210/services/fitment"
	"github.com/spf13/cobra"
)

type resolveOptions struct {
	file        string
	vehicleID   string
	pcd         string
	axle        string
	diameter    int
	widthPolicy string
	page        int
	pageSize    int
}

var resolveOpts resolveOptions

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve wheels for a vehicle or bolt pattern against a YAML catalog and print JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd.Context(), resolveOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := resolveCmd.Flags()
	f.StringVarP(&resolveOpts.file, "file", "f", "", "catalog YAML file (required)")
	f.StringVar(&resolveOpts.vehicleID, "vehicle", "", "vehicle id")
	f.StringVar(&resolveOpts.pcd, "pcd", "", "bolt pattern, used when --vehicle is empty")
	f.StringVar(&resolveOpts.axle, "axle", "both", "front | rear | both")
	f.IntVar(&resolveOpts.diameter, "diameter", 0, "diameter filter in inches")
	f.StringVar(&resolveOpts.widthPolicy, "width-policy", string(fitment.WidthPolicyFront), "front | intersect")
	f.IntVar(&resolveOpts.page, "page", 1, "page number")
	f.IntVar(&resolveOpts.pageSize, "page-size", 20, "items per page")
	_ = resolveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(ctx context.Context, opts resolveOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.vehicleID == "" && opts.pcd == "" {
		return fmt.Errorf("one of --vehicle or --pcd is required")
	}
	axle, err := fitment.ParseAxle(opts.axle)
	if err != nil {
		return err
	}
	if opts.page < 1 || opts.pageSize < 1 || opts.pageSize > 100 {
		return fmt.Errorf("page must be >= 1 and page-size within 1..100")
	}

	cf, err := LoadCatalogFile(opts.file)
	if err != nil {
		return err
	}
	ds, err := cf.Dataset(time.Now())
	if err != nil {
		return err
	}

	resolver := fitment.NewResolver(repository.NewMemoryCatalogRepository(ds),
		fitment.WithWidthPolicy(fitment.WidthPolicy(opts.widthPolicy)),
	)

	q := fitment.Query{VehicleID: opts.vehicleID, Axle: axle, Page: opts.page, PageSize: opts.pageSize}
	if opts.diameter > 0 {
		q.Diameter = &opts.diameter
	}

	var res *models.WheelsListResponse
	if opts.vehicleID != "" {
		res, err = resolver.Resolve(ctx, q)
	} else {
		res, err = resolver.ResolveByBoltPattern(ctx, opts.pcd, q)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
