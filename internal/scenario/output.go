package scenario

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Write prints reports as "text" (an aligned table) or "yaml".
func Write(w io.Writer, format string, reports []Report) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("encode reports: %w", err)
		}
		return enc.Close()
	case "text", "":
		return writeText(w, reports)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, reports []Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tRESULT\tPULLED\tDURATION\tMETRICS")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%v\t%d\t%s\t%s\n", r.Name, r.Result, r.Pulled, r.Duration, formatMetrics(r.Metrics))
	}
	return tw.Flush()
}

func formatMetrics(m map[string]int64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := lo.Keys(m)
	slices.Sort(keys)
	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return fmt.Sprintf("%s=%d", k, m[k])
	}), " ")
}

// WriteList prints the scenario catalogue.
func WriteList(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range registry {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
	}
	return tw.Flush()
}
