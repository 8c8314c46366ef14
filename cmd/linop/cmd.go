package main

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/linop/internal/backend"
	"github.com/born-ml/linop/internal/envconfig"
	"github.com/born-ml/linop/internal/linop"
	"github.com/born-ml/linop/internal/linops/grad"
	"github.com/born-ml/linop/internal/tensor"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

// tolerance for the relative adjoint and normal errors.
const tolerance = 1e-5

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "linop",
		Short:         "Linear operator diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.AddCommand(newCheckCmd(), newEnvCmd(), newVersionCmd())
	return rootCmd
}

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check adjoint and normal consistency of the gradient operator",
		Args:  cobra.ExactArgs(0),
		RunE:  CheckHandler,
	}

	checkCmd.Flags().String("dims", "64,64", "Comma-separated domain dimensions")
	checkCmd.Flags().Uint("flags", 3, "Bitmask of differentiated dimensions")
	checkCmd.Flags().String("device", "", "Array backend: cpu or webgpu (default: $LINOP_DEVICE or cpu)")
	checkCmd.Flags().Int64("seed", 1, "Random seed for test vectors")
	return checkCmd
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show configuration variables",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return EnvHandler(cmd.OutOrStdout())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linop version %s\n", version)
		},
	}
}

// CheckHandler runs the gradient diagnostics selected by the command flags.
func CheckHandler(cmd *cobra.Command, args []string) error {
	dimsFlag, _ := cmd.Flags().GetString("dims")
	flags, _ := cmd.Flags().GetUint("flags")
	device, _ := cmd.Flags().GetString("device")
	seed, _ := cmd.Flags().GetInt64("seed")

	dims, err := parseDims(dimsFlag)
	if err != nil {
		return err
	}

	be, release, err := backend.Open(device)
	if err != nil {
		return err
	}
	defer release()

	return runCheck(cmd.OutOrStdout(), be, dims, flags, seed)
}

type checkResult struct {
	name  string
	value string
	ok    bool
}

func runCheck(w io.Writer, be tensor.Backend, dims tensor.Shape, flags uint, seed int64) error {
	op, err := grad.New(be, dims, flags)
	if err != nil {
		return err
	}
	defer op.Free()

	rng := rand.New(rand.NewSource(seed))
	device := be.Device()
	x := tensor.Randn(op.Domain().Dims, device, rng)
	defer x.Release()
	y := tensor.Randn(op.Codomain().Dims, device, rng)
	defer y.Release()

	results := []checkResult{
		{"backend", be.Name(), true},
		{"domain", fmt.Sprint([]int(op.Domain().Dims)), true},
		{"codomain", fmt.Sprint([]int(op.Codomain().Dims)), true},
	}

	start := time.Now()
	adj, err := linop.AdjointError(op, x, y)
	if err != nil {
		return errors.Wrap(err, "adjoint check")
	}
	results = append(results, checkResult{"adjoint error", formatError(adj), adj < tolerance})

	nrm, err := linop.NormalError(op, x)
	if err != nil {
		return errors.Wrap(err, "normal check")
	}
	results = append(results, checkResult{"normal error", formatError(nrm), nrm < tolerance})
	results = append(results, checkResult{"elapsed", time.Since(start).Round(time.Microsecond).String(), true})

	var data [][]string
	failed := 0
	for _, r := range results {
		status := "ok"
		if !r.ok {
			status = "FAIL"
			failed++
		}
		data = append(data, []string{strings.ToUpper(r.name), r.value, status})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"CHECK", "VALUE", "STATUS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d check(s) exceeded tolerance %g", failed, tolerance)
	}
	return nil
}

// EnvHandler prints every configuration variable.
func EnvHandler(w io.Writer) error {
	vars := envconfig.AsMap()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var data [][]string
	for _, k := range keys {
		v := vars[k]
		data = append(data, []string{v.Name, fmt.Sprint(v.Value), v.Description})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "VALUE", "DESCRIPTION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	return nil
}

func parseDims(s string) (tensor.Shape, error) {
	parts := strings.Split(s, ",")
	dims := make(tensor.Shape, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid dimension %q in %q", p, s)
		}
		if n <= 0 {
			return nil, fmt.Errorf("dimension %d in %q must be positive", n, s)
		}
		dims = append(dims, n)
	}
	return dims, nil
}

func formatError(e float64) string {
	return strconv.FormatFloat(e, 'e', 2, 64)
}
