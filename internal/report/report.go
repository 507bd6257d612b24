// Package report renders run summaries and history listings.
package report

import (
	"fmt"
	"io"
	"strconv"
	"ytbatch/internal/domain/consts"
	"ytbatch/internal/models"

	"github.com/olekukonko/tablewriter"
)

// Summary writes the failures of res, then its totals.
func Summary(w io.Writer, res *models.BatchResult) {
	if res.Failed() > 0 || res.Malformed() > 0 {
		table := newTable(w)
		table.SetHeader([]string{"Line", "Name", "Status", "Reason"})

		// Input order, malformed rows merged by line
		rows := res.RowErrors
		for _, o := range res.Outcomes {
			for len(rows) > 0 && rows[0].Line < o.Job.Line {
				table.Append(rowErrorRow(rows[0]))
				rows = rows[1:]
			}
			if o.Status.IsFailure() {
				table.Append([]string{
					strconv.Itoa(o.Job.Line),
					o.Job.DisplayName,
					fmt.Sprintf("%s (%s)", o.Status, o.Kind),
					o.Reason,
				})
			}
		}
		for _, r := range rows {
			table.Append(rowErrorRow(r))
		}
		table.Render()
	}

	table := newTable(w)
	table.SetHeader([]string{"Result", "Count"})
	table.Append([]string{"Succeeded", strconv.Itoa(res.Succeeded())})
	table.Append([]string{"Degraded", strconv.Itoa(res.Degraded())})
	table.Append([]string{"Skipped", strconv.Itoa(res.Skipped())})
	table.Append([]string{"Failed", strconv.Itoa(res.Failed())})
	table.Append([]string{"Malformed rows", strconv.Itoa(res.Malformed())})
	table.Render()

	if res.Aborted {
		fmt.Fprintf(w, "%sRun aborted:%s %s\n", consts.ColorRed, consts.ColorReset, res.AbortReason)
	}
}

// History writes stored download records.
func History(w io.Writer, records []*models.DownloadRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No downloads recorded.")
		return
	}

	table := newTable(w)
	table.SetHeader([]string{"Finished", "Name", "Status", "Path / Reason", "URL"})
	for _, r := range records {
		detail := r.Path
		if r.Status.IsFailure() {
			detail = r.Reason
		}

		finished := ""
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Local().Format(consts.TimeFormatLong)
		}
		table.Append([]string{finished, r.Name, string(r.Status), detail, r.URL})
	}
	table.Render()
}

func rowErrorRow(r models.RowError) []string {
	return []string{strconv.Itoa(r.Line), "", "malformed", r.Reason}
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	return table
}
