package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/August26/proxystatus-go/internal/model"
)

// PrintResultsTable prints a human-readable table of per-proxy reports.
func PrintResultsTable(w io.Writer, reports []model.Report) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "PROXY\tKIND\tADDRESS\tIP\tVERDICT\tPROBLEMS\tHOST\tWEB\tTIME(ms)\tTRIES\tCOUNTRY")

	for _, r := range reports {
		d := r.Descriptor

		addr := "-"
		if d.Enabled() {
			addr = d.Address()
		}

		elapsed := "-"
		if r.ElapsedMs > 0 {
			elapsed = strconv.FormatInt(r.ElapsedMs, 10)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			d.ShortString(),
			d.ConnectionType(),
			addr,
			dashIfEmpty(d.IPHost()),
			r.Status(),
			r.Problems,
			probeYN(r.HostProbe),
			probeYN(r.ContentProbe),
			elapsed,
			r.Attempts,
			dashIfEmpty(r.Geo.Country),
		)
	}

	tw.Flush()
}

// PrintSummary prints the aggregated batch stats.
func PrintSummary(w io.Writer, stats model.BatchStats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Total proxies:            %d\n", stats.TotalProxies)
	fmt.Fprintf(w, "  Unique proxies:           %d\n", stats.UniqueProxies)
	fmt.Fprintf(w, "  Usable proxies:           %d\n", stats.UsableProxies)
	for _, v := range model.Verdicts {
		if n := stats.VerdictCounts[v]; n > 0 {
			fmt.Fprintf(w, "    %-24s%d\n", string(v)+":", n)
		}
	}
	fmt.Fprintf(w, "  Success rate:             %.1f%%\n", stats.SuccessRatePct)
	fmt.Fprintf(w, "  Avg evaluation time:      %.1f ms\n", stats.AvgElapsedMs)
	fmt.Fprintf(w, "  Batch time:               %.2f s\n", float64(stats.TotalProcessingTimeMs)/1000.0)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func boolToYN(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func probeYN(p model.ProbeResult) string {
	if !p.Ran {
		return "-"
	}
	return boolToYN(p.Reachable)
}

// WriteFile writes all reports + summary stats to a file in json or csv format.
func WriteFile(path string, format string, reports []model.Report, stats model.BatchStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	switch format {
	case "json":
		err = writeJSON(f, reports, stats)
	case "csv":
		err = writeCSV(f, reports)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

// writeJSON writes an object with "results" and "summary".
func writeJSON(w io.Writer, reports []model.Report, stats model.BatchStats) error {
	payload := struct {
		Results []model.Report   `json:"results"`
		Summary model.BatchStats `json:"summary"`
	}{
		Results: reports,
		Summary: stats,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// writeCSV writes one row per report (the summary is not included).
func writeCSV(w io.Writer, reports []model.Report) error {
	cw := csv.NewWriter(w)

	header := []string{
		"label",
		"kind",
		"host",
		"ip",
		"port",
		"verdict",
		"problems",
		"host_reachable",
		"content_reachable",
		"elapsed_ms",
		"attempts",
		"country",
		"city",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range reports {
		d := r.Descriptor
		row := []string{
			d.ShortString(),
			string(d.ConnectionType()),
			d.HostName(),
			d.IPHost(),
			strconv.Itoa(d.ProxyPort()),
			string(r.Status()),
			r.Problems.String(),
			probeYN(r.HostProbe),
			probeYN(r.ContentProbe),
			strconv.FormatInt(r.ElapsedMs, 10),
			strconv.Itoa(r.Attempts),
			r.Geo.Country,
			r.Geo.City,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
