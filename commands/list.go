package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"go-tania/store"
)

// listKinds 可列出的实体
var listKinds = []string{"farms", "reservoirs", "areas", "crops", "materials", "tasks"}

type listOptions struct {
	page   int
	farm   string
	status string
}

func newListCmd(a *app) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:       "list <" + strings.Join(listKinds, "|") + ">",
		Short:     "Print a listing page as a table",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: listKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			authed, err := a.authorizedAPI(cmd.Context())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), store.New(authed), args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().StringVar(&opts.farm, "farm", "", "farm uid (defaults to the first farm)")
	cmd.Flags().StringVar(&opts.status, "status", "", "crop status filter")
	return cmd
}

// selectFarm 拉取农场并选中 --farm 指定的农场
func selectFarm(ctx context.Context, st *store.Store, uid string) (string, error) {
	if _, err := st.Farm.FetchFarms(ctx); err != nil {
		return "", err
	}
	if uid != "" {
		if _, err := st.Farm.SetCurrentFarm(uid); err != nil {
			return "", fmt.Errorf("farm %s: %w", uid, err)
		}
	}
	return st.Farm.CurrentID()
}

func runList(ctx context.Context, out io.Writer, st *store.Store, kind string, opts listOptions) error {
	if opts.page < 1 {
		opts.page = 1
	}
	var (
		headers []string
		rows    [][]string
		paging  *store.Paging
	)

	switch kind {
	case "farms":
		if _, err := st.Farm.FetchFarms(ctx); err != nil {
			return err
		}
		if opts.farm != "" {
			if _, err := st.Farm.SetCurrentFarm(opts.farm); err != nil {
				return fmt.Errorf("farm %s: %w", opts.farm, err)
			}
		}
		headers, rows = farmHeaders, farmRows(st.Farm.Farms(), st.Farm.Current().UID)
	case "reservoirs":
		farmID, err := selectFarm(ctx, st, opts.farm)
		if err != nil {
			return err
		}
		reservoirs, err := st.Reservoir.FetchReservoirs(ctx, farmID)
		if err != nil {
			return err
		}
		headers, rows = reservoirHeaders, reservoirRows(reservoirs)
	case "areas":
		farmID, err := selectFarm(ctx, st, opts.farm)
		if err != nil {
			return err
		}
		areas, err := st.Area.FetchAreas(ctx, farmID)
		if err != nil {
			return err
		}
		headers, rows = areaHeaders, areaRows(areas)
	case "crops":
		farmID, err := selectFarm(ctx, st, opts.farm)
		if err != nil {
			return err
		}
		if _, err := st.Crop.FetchCrops(ctx, farmID, opts.page, opts.status); err != nil {
			return err
		}
		p := st.Crop.Paging()
		headers, rows, paging = cropHeaders, cropRows(st.Crop.Crops()), &p
	case "materials":
		if _, err := st.Inventory.FetchMaterials(ctx, opts.page); err != nil {
			return err
		}
		p := st.Inventory.Paging()
		headers, rows, paging = materialHeaders, materialRows(st.Inventory.Materials()), &p
	case "tasks":
		if _, err := st.Task.FetchTasks(ctx, opts.page); err != nil {
			return err
		}
		p := st.Task.Paging()
		headers, rows, paging = taskHeaders, taskRows(st.Task.Tasks()), &p
	default:
		return fmt.Errorf("unknown list %q, want one of %s", kind, strings.Join(listKinds, ", "))
	}

	if len(rows) == 0 {
		fmt.Fprintln(out, footerStyle.Render("no "+kind))
	} else {
		fmt.Fprintln(out, renderTable(headers, rows))
	}
	if paging != nil {
		fmt.Fprintln(out, pageFooter(opts.page, paging.Pages, paging.Total))
	}
	return nil
}
